package command

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// ReleaseOrderCommand represents the command to return an order's reserved
// stock to the available pool
type ReleaseOrderCommand struct {
	WorkspaceID uint
	OrderID     uint
}

// ReleaseOrderHandler handles reservation release for canceled orders
type ReleaseOrderHandler struct {
	txRunner domain.LedgerTxRunner
}

// NewReleaseOrderHandler creates a new release order handler
func NewReleaseOrderHandler(txRunner domain.LedgerTxRunner) *ReleaseOrderHandler {
	return &ReleaseOrderHandler{txRunner: txRunner}
}

// Handle reverses the order's outstanding reservations by inserting the
// equal-and-opposite movements. The outstanding amount is the net of all
// RESERVATION rows tagged with the order, so releasing twice, or releasing an
// order that never reserved, inserts nothing.
func (h *ReleaseOrderHandler) Handle(cmd ReleaseOrderCommand) error {
	if cmd.WorkspaceID == 0 || cmd.OrderID == 0 {
		return fmt.Errorf("workspace_id and order_id are required")
	}

	orderID := cmd.OrderID
	return h.txRunner.RunInTx(func(movements domain.MovementRepository, levels domain.StockLevelRepository) error {
		reserved, err := movements.SumReservedByOrder(cmd.WorkspaceID, cmd.OrderID)
		if err != nil {
			return fmt.Errorf("failed to read reservations: %w", err)
		}

		released := 0
		for key, net := range reserved {
			if net >= 0 {
				continue
			}
			movement := &domain.StockMovement{
				WorkspaceID: cmd.WorkspaceID,
				WarehouseID: key.WarehouseID,
				ProductID:   key.ProductID,
				Quantity:    -net,
				Type:        domain.MovementReservation,
				OrderID:     &orderID,
				Description: fmt.Sprintf("release reservation for order %d", orderID),
			}
			if err := appendMovement(movements, levels, movement); err != nil {
				return err
			}
			released++
		}

		if released == 0 {
			logger.Logger.Debug().
				Uint("workspace_id", cmd.WorkspaceID).
				Uint("order_id", cmd.OrderID).
				Msg("No outstanding reservations to release")
		}
		return nil
	})
}
