package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Purchase order statuses
const (
	StatusDraft    = "DRAFT"
	StatusOrdered  = "ORDERED"
	StatusReceived = "RECEIVED"
	StatusCanceled = "CANCELED"
)

var (
	ErrNotFound        = errors.New("purchase order not found")
	ErrEmptyItems      = errors.New("purchase order has no items")
	ErrAlreadyReceived = errors.New("purchase order already received")
	ErrNotReceivable   = errors.New("purchase order cannot be received in its current status")
)

// Receivable reports whether stock can still be booked in for the status.
func Receivable(status string) bool {
	return status == StatusDraft || status == StatusOrdered
}

// PurchaseOrder represents an inbound supplier order
type PurchaseOrder struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	WorkspaceID uint                `json:"workspace_id" gorm:"not null;index"`
	SupplierRef string              `json:"supplier_ref"`
	WarehouseID uint                `json:"warehouse_id"`
	Status      string              `json:"status" gorm:"default:'DRAFT';index"`
	Note        string              `json:"note,omitempty"`
	ReceivedAt  *time.Time          `json:"received_at,omitempty"`
	Items       []PurchaseOrderItem `json:"items" gorm:"foreignKey:PurchaseOrderID"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is a single line on a purchase order
type PurchaseOrderItem struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	PurchaseOrderID uint    `json:"purchase_order_id" gorm:"not null;index"`
	ProductID       uint    `json:"product_id" gorm:"not null"`
	Quantity        int     `json:"quantity" gorm:"not null"`
	UnitCost        float64 `json:"unit_cost"`
}

// TableName specifies the table name
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrderRepository defines the contract for purchase order data access
type PurchaseOrderRepository interface {
	Create(order *PurchaseOrder) error
	FindByID(workspaceID, id uint) (*PurchaseOrder, error)
	FindByIDForUpdate(workspaceID, id uint) (*PurchaseOrder, error)
	FindByWorkspace(workspaceID uint, limit, offset int) ([]PurchaseOrder, error)
	Save(order *PurchaseOrder) error
}

// PurchaseTxRunner executes a unit of work against the purchase store in a
// single transaction.
type PurchaseTxRunner interface {
	RunInTx(fn func(orders PurchaseOrderRepository) error) error
}
