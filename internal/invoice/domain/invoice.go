package domain

import (
	"errors"
	"time"
)

// Invoice types
const (
	TypeSales    = "SALES"
	TypePurchase = "PURCHASE"
)

// Invoice statuses
const (
	StatusIssued = "ISSUED"
	StatusPaid   = "PAID"
	StatusVoid   = "VOID"
)

var (
	ErrNotFound      = errors.New("invoice: not found")
	ErrAlreadyExists = errors.New("invoice: order already has an invoice")
)

// Invoice snapshots an order's billing state. Line items are copied, not
// referenced, so later order mutation cannot change an issued invoice.
type Invoice struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	WorkspaceID uint          `json:"workspace_id" gorm:"not null;index"`
	Type        string        `json:"type" gorm:"not null;default:'SALES'"`
	Status      string        `json:"status" gorm:"not null;default:'ISSUED'"`
	OrderID     *uint         `json:"order_id,omitempty" gorm:"uniqueIndex"` // at most one invoice per order
	BuyerRef    string        `json:"buyer_ref"`
	Subtotal    float64       `json:"subtotal" gorm:"not null"`
	Tax         float64       `json:"tax"`
	Discount    float64       `json:"discount"`
	ShippingCost float64      `json:"shipping_cost"`
	Total       float64       `json:"total" gorm:"not null"`
	Items       []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one copied line of the source document
type InvoiceItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	InvoiceID uint    `json:"invoice_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total" gorm:"not null"`
}

// TableName specifies the table name
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// InvoiceRepository defines the contract for invoice data access
type InvoiceRepository interface {
	Create(invoice *Invoice) error
	FindByID(workspaceID, id uint) (*Invoice, error)
	FindByOrderID(workspaceID, orderID uint) (*Invoice, error)
	FindByWorkspace(workspaceID uint, limit, offset int) ([]Invoice, error)
}
