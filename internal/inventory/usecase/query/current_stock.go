package query

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

// CurrentStockQuery represents the query for the stock of one pair
type CurrentStockQuery struct {
	WorkspaceID uint
	WarehouseID uint
	ProductID   uint
}

// CurrentStockHandler handles current stock queries
type CurrentStockHandler struct {
	repo domain.MovementRepository
}

// NewCurrentStockHandler creates a new current stock handler
func NewCurrentStockHandler(repo domain.MovementRepository) *CurrentStockHandler {
	return &CurrentStockHandler{repo: repo}
}

// Handle folds the ledger: current stock is the sum of all signed movement
// quantities for the (product, warehouse) pair
func (h *CurrentStockHandler) Handle(q CurrentStockQuery) (int, error) {
	if q.WorkspaceID == 0 || q.WarehouseID == 0 || q.ProductID == 0 {
		return 0, fmt.Errorf("workspace_id, warehouse_id and product_id are required")
	}
	return h.repo.SumByStock(q.WorkspaceID, q.WarehouseID, q.ProductID)
}
