package domain

import (
	"errors"
	"time"
)

// Movement types
const (
	MovementPurchase    = "PURCHASE"
	MovementSale        = "SALE"
	MovementReturn      = "RETURN"
	MovementAdjustment  = "ADJUSTMENT"
	MovementTransferIn  = "TRANSFER_IN"
	MovementTransferOut = "TRANSFER_OUT"
	MovementReservation = "RESERVATION"
)

var (
	ErrInvalidMovementType = errors.New("inventory: invalid movement type")
	ErrZeroQuantity        = errors.New("inventory: quantity must not be zero")
	ErrInsufficientStock   = errors.New("inventory: insufficient stock")
	ErrNoWarehouse         = errors.New("inventory: no active warehouse for workspace")
	ErrWarehouseNotFound   = errors.New("inventory: warehouse not found")
)

// ValidMovementType reports whether t is one of the known movement types
func ValidMovementType(t string) bool {
	switch t {
	case MovementPurchase, MovementSale, MovementReturn, MovementAdjustment,
		MovementTransferIn, MovementTransferOut, MovementReservation:
		return true
	}
	return false
}

// DebitGuarded reports whether a negative movement of type t must not drive
// available stock below zero. Reservations and sales are oversell-guarded;
// adjustments and returns may take stock negative for later reconciliation.
func DebitGuarded(t string) bool {
	return t == MovementReservation || t == MovementSale
}

// StockMovement is an immutable ledger entry. Rows are only ever inserted;
// reversing an effect means inserting the equal-and-opposite movement.
type StockMovement struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	WorkspaceID     uint      `json:"workspace_id" gorm:"not null;index:idx_movements_stock,priority:1"`
	WarehouseID     uint      `json:"warehouse_id" gorm:"not null;index:idx_movements_stock,priority:2"`
	ProductID       uint      `json:"product_id" gorm:"not null;index:idx_movements_stock,priority:3"`
	Quantity        int       `json:"quantity" gorm:"not null"` // signed: positive = stock in, negative = stock out
	Type            string    `json:"type" gorm:"not null"`
	OrderID         *uint     `json:"order_id,omitempty" gorm:"index"`
	PurchaseOrderID *uint     `json:"purchase_order_id,omitempty" gorm:"index"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// Warehouse is a stock location scoped to a workspace
type Warehouse struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorkspaceID uint      `json:"workspace_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Warehouse) TableName() string {
	return "warehouses"
}

// StockLevel caches the ledger fold per (product, warehouse). The ledger stays
// the source of truth; this row exists as the lock anchor that serializes
// concurrent reservations for the same pair.
type StockLevel struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorkspaceID uint      `json:"workspace_id" gorm:"not null"`
	WarehouseID uint      `json:"warehouse_id" gorm:"not null;uniqueIndex:idx_stock_levels_pair,priority:1"`
	ProductID   uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_stock_levels_pair,priority:2"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (StockLevel) TableName() string {
	return "stock_levels"
}

// MovementRepository defines the contract for ledger data access. The ledger
// is append-only: there is no update or delete.
type MovementRepository interface {
	Create(movement *StockMovement) error
	SumByStock(workspaceID, warehouseID, productID uint) (int, error)
	SumReservedByOrder(workspaceID, orderID uint) (map[StockKey]int, error)
	FindByWorkspace(workspaceID uint, limit, offset int) ([]StockMovement, error)
	FindByOrderID(workspaceID, orderID uint) ([]StockMovement, error)
}

// StockKey identifies a (warehouse, product) pair within a workspace
type StockKey struct {
	WarehouseID uint
	ProductID   uint
}

// WarehouseRepository defines the contract for warehouse data access
type WarehouseRepository interface {
	Create(warehouse *Warehouse) error
	FindByID(id uint) (*Warehouse, error)
	FindDefault(workspaceID uint) (*Warehouse, error)
	FindByWorkspace(workspaceID uint) ([]Warehouse, error)
}

// StockLevelRepository defines the contract for the cached stock counter.
// GetForUpdate must take a row lock so that concurrent movements for the same
// (product, warehouse) serialize.
type StockLevelRepository interface {
	GetForUpdate(workspaceID, warehouseID, productID uint) (*StockLevel, error)
	Upsert(level *StockLevel) error
}

// LedgerTxRunner runs fn against movement and stock-level repositories bound
// to a single database transaction.
type LedgerTxRunner interface {
	RunInTx(fn func(movements MovementRepository, levels StockLevelRepository) error) error
}
