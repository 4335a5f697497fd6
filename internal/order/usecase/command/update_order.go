package command

import (
	"context"
	"fmt"

	"github.com/storeops/backoffice/internal/notification"
	"github.com/storeops/backoffice/internal/order/domain"
	"github.com/storeops/backoffice/kafka"
	"github.com/storeops/backoffice/pkg/logger"
)

// UpdateOrderCommand represents the command to patch an order. Items are
// never patched; quantity changes happen by canceling and re-ordering.
type UpdateOrderCommand struct {
	WorkspaceID     uint
	OrderID         uint
	Status          *domain.Status
	PaymentMethod   *string
	ShippingAddress *string
	Version         uint // expected version; 0 skips the optimistic check
}

// UpdateOrderHandler handles order updates and their status-transition hooks
type UpdateOrderHandler struct {
	txRunner  domain.OrderTxRunner
	inventory InventoryService
	notifier  notification.Notifier
	publisher StatusEventPublisher // nil disables status-change events
}

// NewUpdateOrderHandler creates a new update order handler
func NewUpdateOrderHandler(txRunner domain.OrderTxRunner, inventory InventoryService, notifier notification.Notifier, publisher StatusEventPublisher) *UpdateOrderHandler {
	return &UpdateOrderHandler{txRunner: txRunner, inventory: inventory, notifier: notifier, publisher: publisher}
}

// Handle applies the patch inside a locked transaction, snapshotting the old
// status before mutation. After commit: a status change fires exactly one
// notification pair, and a transition that newly enters CANCELED releases the
// order's reservations exactly once.
func (h *UpdateOrderHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
	if cmd.WorkspaceID == 0 || cmd.OrderID == 0 {
		return nil, fmt.Errorf("workspace_id and order_id are required")
	}
	if cmd.Status != nil && !domain.ValidStatus(*cmd.Status) {
		return nil, domain.ErrUnknownStatus
	}

	var updated *domain.Order
	var oldStatus domain.Status

	err := h.txRunner.RunInTx(func(repo domain.OrderRepository) error {
		order, err := repo.FindByIDForUpdate(cmd.WorkspaceID, cmd.OrderID)
		if err != nil {
			return err
		}

		// Snapshot before mutation: the patch carries no delta.
		oldStatus = order.Status

		if cmd.Version != 0 && cmd.Version != order.Version {
			return domain.ErrStaleVersion
		}

		if cmd.Status != nil {
			if !domain.CanTransition(order.Status, *cmd.Status) {
				return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, *cmd.Status)
			}
			order.Status = *cmd.Status
		}
		if cmd.PaymentMethod != nil {
			order.PaymentMethod = *cmd.PaymentMethod
		}
		if cmd.ShippingAddress != nil {
			order.ShippingAddress = *cmd.ShippingAddress
		}

		order.Version++
		if err := repo.Save(order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != updated.Status {
		h.afterStatusChange(ctx, updated, oldStatus)
	}

	return updated, nil
}

func (h *UpdateOrderHandler) afterStatusChange(ctx context.Context, order *domain.Order, oldStatus domain.Status) {
	// Entering CANCELED returns reserved stock to the pool. oldStatus is
	// never CANCELED here (CANCELED is terminal), so this runs once per order.
	if order.Status == domain.StatusCanceled {
		if err := h.inventory.ReleaseOrder(order.WorkspaceID, order.ID); err != nil {
			logger.Logger.Error().
				Err(err).
				Uint("workspace_id", order.WorkspaceID).
				Uint("order_id", order.ID).
				Msg("Failed to release reservations for canceled order")
		}
	}

	buyerMsg := notification.Notification{
		WorkspaceID:  order.WorkspaceID,
		RecipientRef: order.BuyerRef,
		Title:        "Order status updated",
		Message:      fmt.Sprintf("Your order #%d is now %s.", order.ID, domain.Label(order.Status)),
		SendSMS:      true,
	}
	if err := h.notifier.Notify(ctx, buyerMsg); err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to notify buyer of status change")
	}

	adminMsg := notification.Notification{
		WorkspaceID:  order.WorkspaceID,
		RecipientRef: fmt.Sprintf("workspace-admins:%d", order.WorkspaceID),
		Title:        "Order status changed",
		Message:      fmt.Sprintf("Order #%d moved from %s to %s.", order.ID, oldStatus, order.Status),
		SendSMS:      false,
	}
	if err := h.notifier.Notify(ctx, adminMsg); err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to notify admins of status change")
	}

	if h.publisher != nil {
		event := kafka.OrderStatusChangedEvent{
			WorkspaceID: order.WorkspaceID,
			OrderID:     order.ID,
			OldStatus:   string(oldStatus),
			NewStatus:   string(order.Status),
		}
		if err := h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			logger.Logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to publish status change event")
		}
	}
}
