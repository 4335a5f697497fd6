package query

import (
	"fmt"

	"github.com/storeops/backoffice/internal/order/domain"
)

// GetOrderQuery represents the query to fetch one order with items
type GetOrderQuery struct {
	WorkspaceID uint
	OrderID     uint
}

// GetOrderHandler handles get order queries
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(q GetOrderQuery) (*domain.Order, error) {
	if q.WorkspaceID == 0 || q.OrderID == 0 {
		return nil, fmt.Errorf("workspace_id and order_id are required")
	}
	return h.repo.FindByID(q.WorkspaceID, q.OrderID)
}
