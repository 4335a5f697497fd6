package query

import (
	"fmt"

	"github.com/storeops/backoffice/internal/order/domain"
)

// ListOrdersQuery represents the query to list a workspace's orders
type ListOrdersQuery struct {
	WorkspaceID uint
	Limit       int
	Offset      int
}

// ListOrdersHandler handles order listing
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.Order, error) {
	if q.WorkspaceID == 0 {
		return nil, fmt.Errorf("workspace_id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return h.repo.FindByWorkspace(q.WorkspaceID, q.Limit, q.Offset)
}
