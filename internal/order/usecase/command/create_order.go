package command

import (
	"context"
	"fmt"

	invcommand "github.com/storeops/backoffice/internal/inventory/usecase/command"
	"github.com/storeops/backoffice/internal/notification"
	"github.com/storeops/backoffice/internal/order/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

// OrderItemInput is one requested line of a new order
type OrderItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
	Discount  float64
	Tax       float64
}

// CreateOrderCommand represents the command to create an order
type CreateOrderCommand struct {
	WorkspaceID      uint
	BuyerRef         string
	SourceChannel    string
	PaymentMethod    string
	Subtotal         float64
	Tax              float64
	Discount         float64
	ShippingCost     float64
	Total            float64
	ShippingMethodID *uint
	ShippingAddress  string
	Items            []OrderItemInput
}

// CreateOrderHandler handles order creation
type CreateOrderHandler struct {
	orders    domain.OrderRepository
	inventory InventoryService
	notifier  notification.Notifier
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(orders domain.OrderRepository, inventory InventoryService, notifier notification.Notifier) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, inventory: inventory, notifier: notifier}
}

// Handle validates and persists the order, then reserves stock and notifies.
// The order succeeds or fails strictly on its own validation and persistence;
// reservation and notification are best-effort side effects that are logged
// when they fail.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.WorkspaceID == 0 {
		return nil, fmt.Errorf("workspace_id is required")
	}

	order := &domain.Order{
		WorkspaceID:      cmd.WorkspaceID,
		BuyerRef:         cmd.BuyerRef,
		Status:           domain.StatusNew,
		SourceChannel:    cmd.SourceChannel,
		PaymentMethod:    cmd.PaymentMethod,
		Subtotal:         cmd.Subtotal,
		Tax:              cmd.Tax,
		Discount:         cmd.Discount,
		ShippingCost:     cmd.ShippingCost,
		Total:            cmd.Total,
		ShippingMethodID: cmd.ShippingMethodID,
		ShippingAddress:  cmd.ShippingAddress,
		Version:          1,
	}
	for _, item := range cmd.Items {
		line := domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Tax:       item.Tax,
		}
		line.Total = line.LineTotal()
		order.Items = append(order.Items, line)
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	h.reserveStock(order)
	h.notifyCreated(ctx, order)

	return order, nil
}

func (h *CreateOrderHandler) reserveStock(order *domain.Order) {
	lines := make([]invcommand.ReservationLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, invcommand.ReservationLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := h.inventory.ReserveOrder(order.WorkspaceID, order.ID, lines); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("workspace_id", order.WorkspaceID).
			Uint("order_id", order.ID).
			Msg("Failed to reserve stock for order")
	}
}

func (h *CreateOrderHandler) notifyCreated(ctx context.Context, order *domain.Order) {
	buyerMsg := notification.Notification{
		WorkspaceID:  order.WorkspaceID,
		RecipientRef: order.BuyerRef,
		Title:        "Order received",
		Message:      fmt.Sprintf("Your order #%d has been registered with a total of %.0f.", order.ID, order.Total),
		SendSMS:      true,
	}
	if err := h.notifier.Notify(ctx, buyerMsg); err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to notify buyer of new order")
	}

	adminMsg := notification.Notification{
		WorkspaceID:  order.WorkspaceID,
		RecipientRef: fmt.Sprintf("workspace-admins:%d", order.WorkspaceID),
		Title:        "New order",
		Message:      fmt.Sprintf("Order #%d was placed by %s.", order.ID, order.BuyerRef),
		SendSMS:      false,
	}
	if err := h.notifier.Notify(ctx, adminMsg); err != nil {
		logger.Logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to notify admins of new order")
	}
}
