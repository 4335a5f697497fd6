package query

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

// ListMovementsQuery represents the query to list ledger movements
type ListMovementsQuery struct {
	WorkspaceID uint
	Limit       int
	Offset      int
}

// ListMovementsHandler handles movement listing
type ListMovementsHandler struct {
	repo domain.MovementRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.MovementRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(q ListMovementsQuery) ([]domain.StockMovement, error) {
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
