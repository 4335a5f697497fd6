package command

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// ReceiptLine is one purchase-order item entering stock
type ReceiptLine struct {
	ProductID uint
	Quantity  int
}

// ReceivePurchaseOrderCommand represents the command to book a received
// purchase order into the ledger
type ReceivePurchaseOrderCommand struct {
	WorkspaceID     uint
	PurchaseOrderID uint
	WarehouseID     uint // optional; default warehouse when zero
	Items           []ReceiptLine
}

// ReceivePurchaseOrderHandler handles purchase-order stock intake
type ReceivePurchaseOrderHandler struct {
	txRunner   domain.LedgerTxRunner
	warehouses domain.WarehouseRepository
}

// NewReceivePurchaseOrderHandler creates a new receive purchase order handler
func NewReceivePurchaseOrderHandler(txRunner domain.LedgerTxRunner, warehouses domain.WarehouseRepository) *ReceivePurchaseOrderHandler {
	return &ReceivePurchaseOrderHandler{txRunner: txRunner, warehouses: warehouses}
}

// Handle inserts one positive PURCHASE movement per line item in a single
// transaction. Missing warehouse is the same soft failure as reservation.
func (h *ReceivePurchaseOrderHandler) Handle(cmd ReceivePurchaseOrderCommand) error {
	if cmd.WorkspaceID == 0 || cmd.PurchaseOrderID == 0 {
		return fmt.Errorf("workspace_id and purchase_order_id are required")
	}
	if len(cmd.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for _, item := range cmd.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return fmt.Errorf("every item needs a product_id and a positive quantity")
		}
	}

	warehouseID := cmd.WarehouseID
	if warehouseID == 0 {
		warehouse, err := h.warehouses.FindDefault(cmd.WorkspaceID)
		if err == domain.ErrNoWarehouse {
			logger.Logger.Warn().
				Uint("workspace_id", cmd.WorkspaceID).
				Uint("purchase_order_id", cmd.PurchaseOrderID).
				Msg("No active warehouse for workspace, skipping purchase intake")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to resolve default warehouse: %w", err)
		}
		warehouseID = warehouse.ID
	}

	purchaseOrderID := cmd.PurchaseOrderID
	return h.txRunner.RunInTx(func(movements domain.MovementRepository, levels domain.StockLevelRepository) error {
		for _, item := range cmd.Items {
			movement := &domain.StockMovement{
				WorkspaceID:     cmd.WorkspaceID,
				WarehouseID:     warehouseID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				Type:            domain.MovementPurchase,
				PurchaseOrderID: &purchaseOrderID,
				Description:     fmt.Sprintf("intake for purchase order %d", purchaseOrderID),
			}
			if err := appendMovement(movements, levels, movement); err != nil {
				return err
			}
		}
		return nil
	})
}
