package command

import (
	"fmt"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

// AdjustStockCommand represents the command to append one ledger movement
type AdjustStockCommand struct {
	WorkspaceID     uint
	WarehouseID     uint
	ProductID       uint
	Quantity        int // signed: positive = stock in, negative = stock out
	Type            string
	OrderID         *uint
	PurchaseOrderID *uint
	Description     string
}

// AdjustStockHandler handles stock adjustment commands
type AdjustStockHandler struct {
	txRunner domain.LedgerTxRunner
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(txRunner domain.LedgerTxRunner) *AdjustStockHandler {
	return &AdjustStockHandler{txRunner: txRunner}
}

// Handle appends one movement inside a transaction that holds the row lock
// for the (product, warehouse) pair. Oversell-guarded debit types fail with
// ErrInsufficientStock instead of driving available stock negative; other
// types may take stock negative and get reconciled later.
func (h *AdjustStockHandler) Handle(cmd AdjustStockCommand) (*domain.StockMovement, error) {
	if cmd.WorkspaceID == 0 {
		return nil, fmt.Errorf("workspace_id is required")
	}
	if cmd.WarehouseID == 0 {
		return nil, fmt.Errorf("warehouse_id is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.Quantity == 0 {
		return nil, domain.ErrZeroQuantity
	}
	if !domain.ValidMovementType(cmd.Type) {
		return nil, domain.ErrInvalidMovementType
	}

	movement := &domain.StockMovement{
		WorkspaceID:     cmd.WorkspaceID,
		WarehouseID:     cmd.WarehouseID,
		ProductID:       cmd.ProductID,
		Quantity:        cmd.Quantity,
		Type:            cmd.Type,
		OrderID:         cmd.OrderID,
		PurchaseOrderID: cmd.PurchaseOrderID,
		Description:     cmd.Description,
	}

	err := h.txRunner.RunInTx(func(movements domain.MovementRepository, levels domain.StockLevelRepository) error {
		return appendMovement(movements, levels, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// appendMovement is the single write path into the ledger: lock the level row,
// enforce the oversell guard, insert the movement, refresh the cached counter.
func appendMovement(movements domain.MovementRepository, levels domain.StockLevelRepository, movement *domain.StockMovement) error {
	level, err := levels.GetForUpdate(movement.WorkspaceID, movement.WarehouseID, movement.ProductID)
	if err != nil {
		return fmt.Errorf("failed to lock stock level: %w", err)
	}

	// The ledger fold is the truth; the cached counter is refreshed from it
	// while the row lock is held.
	current, err := movements.SumByStock(movement.WorkspaceID, movement.WarehouseID, movement.ProductID)
	if err != nil {
		return fmt.Errorf("failed to compute current stock: %w", err)
	}

	if movement.Quantity < 0 && domain.DebitGuarded(movement.Type) && current+movement.Quantity < 0 {
		return domain.ErrInsufficientStock
	}

	if err := movements.Create(movement); err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}

	level.Quantity = current + movement.Quantity
	if err := levels.Upsert(level); err != nil {
		return fmt.Errorf("failed to update stock level: %w", err)
	}
	return nil
}
