package command

import (
	"fmt"
	"time"

	invcommand "github.com/storeops/backoffice/internal/inventory/usecase/command"
	"github.com/storeops/backoffice/internal/purchase/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// StockReceiver books received purchase lines into the stock ledger.
type StockReceiver interface {
	ReceivePurchaseOrder(workspaceID, purchaseOrderID, warehouseID uint, lines []invcommand.ReceiptLine) error
}

// ReceivePurchaseOrderCommand represents the command to receive a purchase order
type ReceivePurchaseOrderCommand struct {
	WorkspaceID     uint
	PurchaseOrderID uint
}

// ReceivePurchaseOrderHandler handles purchase order receipt
type ReceivePurchaseOrderHandler struct {
	txRunner  domain.PurchaseTxRunner
	inventory StockReceiver
}

// NewReceivePurchaseOrderHandler creates a new receive handler
func NewReceivePurchaseOrderHandler(txRunner domain.PurchaseTxRunner, inventory StockReceiver) *ReceivePurchaseOrderHandler {
	return &ReceivePurchaseOrderHandler{txRunner: txRunner, inventory: inventory}
}

// Handle flips the order to RECEIVED and books its lines into stock. The
// ReceivedAt marker is checked under the row lock, so a second receive of the
// same order returns ErrAlreadyReceived without touching the ledger.
func (h *ReceivePurchaseOrderHandler) Handle(cmd ReceivePurchaseOrderCommand) (*domain.PurchaseOrder, error) {
	var received *domain.PurchaseOrder
	err := h.txRunner.RunInTx(func(orders domain.PurchaseOrderRepository) error {
		order, err := orders.FindByIDForUpdate(cmd.WorkspaceID, cmd.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order.ReceivedAt != nil {
			return domain.ErrAlreadyReceived
		}
		if !domain.Receivable(order.Status) {
			return fmt.Errorf("%w: %s", domain.ErrNotReceivable, order.Status)
		}

		now := time.Now()
		order.Status = domain.StatusReceived
		order.ReceivedAt = &now
		if err := orders.Save(order); err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := make([]invcommand.ReceiptLine, 0, len(received.Items))
	for _, item := range received.Items {
		lines = append(lines, invcommand.ReceiptLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	if err := h.inventory.ReceivePurchaseOrder(received.WorkspaceID, received.ID, received.WarehouseID, lines); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("purchase_order_id", received.ID).
			Msg("Failed to book received purchase order into stock")
		return received, fmt.Errorf("purchase order received but stock booking failed: %w", err)
	}

	return received, nil
}
