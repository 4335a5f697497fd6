package query

import (
	"github.com/storeops/backoffice/internal/purchase/domain"
)

// ListPurchaseOrdersQuery represents the query to list workspace purchase orders
type ListPurchaseOrdersQuery struct {
	WorkspaceID uint
	Limit       int
	Offset      int
}

// ListPurchaseOrdersHandler handles list purchase order queries
type ListPurchaseOrdersHandler struct {
	orders domain.PurchaseOrderRepository
}

// NewListPurchaseOrdersHandler creates a new list purchase orders handler
func NewListPurchaseOrdersHandler(orders domain.PurchaseOrderRepository) *ListPurchaseOrdersHandler {
	return &ListPurchaseOrdersHandler{orders: orders}
}

// Handle executes the query
func (h *ListPurchaseOrdersHandler) Handle(q ListPurchaseOrdersQuery) ([]domain.PurchaseOrder, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.orders.FindByWorkspace(q.WorkspaceID, limit, offset)
}
