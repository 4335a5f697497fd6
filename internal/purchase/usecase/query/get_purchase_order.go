package query

import (
	"github.com/storeops/backoffice/internal/purchase/domain"
)

// GetPurchaseOrderQuery represents the query to get a purchase order by ID
type GetPurchaseOrderQuery struct {
	WorkspaceID uint
	ID          uint
}

// GetPurchaseOrderHandler handles get purchase order queries
type GetPurchaseOrderHandler struct {
	orders domain.PurchaseOrderRepository
}

// NewGetPurchaseOrderHandler creates a new get purchase order handler
func NewGetPurchaseOrderHandler(orders domain.PurchaseOrderRepository) *GetPurchaseOrderHandler {
	return &GetPurchaseOrderHandler{orders: orders}
}

// Handle executes the query
func (h *GetPurchaseOrderHandler) Handle(q GetPurchaseOrderQuery) (*domain.PurchaseOrder, error) {
	return h.orders.FindByID(q.WorkspaceID, q.ID)
}
