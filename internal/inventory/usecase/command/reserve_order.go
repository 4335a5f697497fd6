package command

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// ReservationLine is one order item to reserve stock for
type ReservationLine struct {
	ProductID uint
	Quantity  int // positive; recorded as a negative RESERVATION movement
}

// ReserveOrderCommand represents the command to reserve stock for an order
type ReserveOrderCommand struct {
	WorkspaceID uint
	OrderID     uint
	Items       []ReservationLine
}

// ReserveOrderHandler handles order stock reservation
type ReserveOrderHandler struct {
	txRunner   domain.LedgerTxRunner
	warehouses domain.WarehouseRepository
}

// NewReserveOrderHandler creates a new reserve order handler
func NewReserveOrderHandler(txRunner domain.LedgerTxRunner, warehouses domain.WarehouseRepository) *ReserveOrderHandler {
	return &ReserveOrderHandler{txRunner: txRunner, warehouses: warehouses}
}

// Handle inserts one negative RESERVATION movement per order item at the
// workspace default warehouse, all in a single transaction. A workspace
// without a warehouse is a soft failure: the reservation is skipped with a
// warning, the order stays valid.
func (h *ReserveOrderHandler) Handle(cmd ReserveOrderCommand) error {
	if cmd.WorkspaceID == 0 || cmd.OrderID == 0 {
		return fmt.Errorf("workspace_id and order_id are required")
	}
	if len(cmd.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for _, item := range cmd.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return fmt.Errorf("every item needs a product_id and a positive quantity")
		}
	}

	warehouse, err := h.warehouses.FindDefault(cmd.WorkspaceID)
	if err == domain.ErrNoWarehouse {
		logger.Logger.Warn().
			Uint("workspace_id", cmd.WorkspaceID).
			Uint("order_id", cmd.OrderID).
			Msg("No active warehouse for workspace, skipping stock reservation")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve default warehouse: %w", err)
	}

	orderID := cmd.OrderID
	return h.txRunner.RunInTx(func(movements domain.MovementRepository, levels domain.StockLevelRepository) error {
		for _, item := range cmd.Items {
			movement := &domain.StockMovement{
				WorkspaceID: cmd.WorkspaceID,
				WarehouseID: warehouse.ID,
				ProductID:   item.ProductID,
				Quantity:    -item.Quantity,
				Type:        domain.MovementReservation,
				OrderID:     &orderID,
				Description: fmt.Sprintf("reservation for order %d", orderID),
			}
			if err := appendMovement(movements, levels, movement); err != nil {
				return err
			}
		}
		return nil
	})
}
