package command

import (
	"context"

	invcommand "github.com/storeops/backoffice/internal/inventory/usecase/command"
	"github.com/storeops/backoffice/kafka"
)

// InventoryService is the slice of the inventory facade the order engine
// needs. Coordination always flows from the order engine outward; inventory
// never calls back into orders.
type InventoryService interface {
	ReserveOrder(workspaceID, orderID uint, lines []invcommand.ReservationLine) error
	ReleaseOrder(workspaceID, orderID uint) error
}

// StatusEventPublisher emits order status transitions for downstream
// consumers. *kafka.Publisher satisfies it; a nil publisher disables events.
type StatusEventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event kafka.OrderStatusChangedEvent) error
}
