package domain

import (
	"errors"
	"math"
	"time"

	invoicedomain "github.com/storeops/backoffice/internal/invoice/domain"
)

// Status is the order lifecycle state
type Status string

// Order statuses
const (
	StatusNew            Status = "NEW"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusPreparing      Status = "PREPARING"
	StatusShipped        Status = "SHIPPED"
	StatusCompleted      Status = "COMPLETED"
	StatusCanceled       Status = "CANCELED"
)

// transitions is the closed transition table. CANCELED is reachable from any
// non-terminal state; COMPLETED and CANCELED are terminal.
var transitions = map[Status][]Status{
	StatusNew:            {StatusPendingPayment, StatusPaid, StatusCanceled},
	StatusPendingPayment: {StatusPaid, StatusCanceled},
	StatusPaid:           {StatusPreparing, StatusCanceled},
	StatusPreparing:      {StatusShipped, StatusCanceled},
	StatusShipped:        {StatusCompleted, StatusCanceled},
	StatusCompleted:      {},
	StatusCanceled:       {},
}

// statusLabels are the buyer-facing names used in status-change messages
var statusLabels = map[Status]string{
	StatusNew:            "registered",
	StatusPendingPayment: "awaiting payment",
	StatusPaid:           "paid",
	StatusPreparing:      "being prepared",
	StatusShipped:        "shipped",
	StatusCompleted:      "completed",
	StatusCanceled:       "canceled",
}

var (
	ErrNotFound          = errors.New("order: not found")
	ErrEmptyItems        = errors.New("order: at least one item is required")
	ErrMissingBuyer      = errors.New("order: buyer reference is required")
	ErrNegativeAmount    = errors.New("order: monetary fields must not be negative")
	ErrTotalMismatch     = errors.New("order: total does not match subtotal + tax - discount + shipping")
	ErrUnknownStatus     = errors.New("order: unknown status")
	ErrInvalidTransition = errors.New("order: illegal status transition")
	ErrStaleVersion      = errors.New("order: conflicting concurrent update")
)

// ValidStatus reports whether s is a known status
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether from → to is a legal transition. Same-status
// writes are allowed, they are no-op transitions.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions
func Terminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Label returns the buyer-facing name of a status
func Label(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// totalTolerance absorbs float rounding when validating monetary identities
const totalTolerance = 0.01

// Order is the aggregate root of a purchase. It is never physically deleted;
// CANCELED is the terminal soft delete.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	WorkspaceID     uint        `json:"workspace_id" gorm:"not null;index"`
	BuyerRef        string      `json:"buyer_ref" gorm:"not null"`
	Status          Status      `json:"status" gorm:"not null;default:'NEW'"`
	SourceChannel   string      `json:"source_channel"`
	PaymentMethod   string      `json:"payment_method"`
	Subtotal        float64     `json:"subtotal" gorm:"not null"`
	Tax             float64     `json:"tax"`
	Discount        float64     `json:"discount"`
	ShippingCost    float64     `json:"shipping_cost"`
	Total           float64     `json:"total" gorm:"not null"`
	ShippingMethodID *uint      `json:"shipping_method_id,omitempty"`
	ShippingAddress string      `json:"shipping_address"`
	Version         uint        `json:"version" gorm:"not null;default:1"` // optimistic concurrency guard
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is owned exclusively by one order and immutable once created
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total" gorm:"not null"` // quantity*unit_price - discount + tax
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal computes the item total from its parts
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity)*i.UnitPrice - i.Discount + i.Tax
}

// Validate checks the creation-time invariants of the aggregate
func (o *Order) Validate() error {
	if o.BuyerRef == "" {
		return ErrMissingBuyer
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	if o.Subtotal < 0 || o.Tax < 0 || o.Discount < 0 || o.ShippingCost < 0 || o.Total < 0 {
		return ErrNegativeAmount
	}
	for _, item := range o.Items {
		if item.ProductID == 0 || item.Quantity <= 0 || item.UnitPrice < 0 {
			return ErrEmptyItems
		}
	}
	expected := o.Subtotal + o.Tax - o.Discount + o.ShippingCost
	if math.Abs(expected-o.Total) > totalTolerance {
		return ErrTotalMismatch
	}
	return nil
}

// StatusPatch is the mutable surface of an order update. Nil fields are left
// untouched; items are never patched.
type StatusPatch struct {
	Status          *Status
	PaymentMethod   *string
	ShippingAddress *string
	Version         uint // expected version, 0 skips the optimistic check
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(workspaceID, id uint) (*Order, error)
	FindByIDForUpdate(workspaceID, id uint) (*Order, error)
	FindByWorkspace(workspaceID uint, limit, offset int) ([]Order, error)
	Save(order *Order) error
}

// OrderTxRunner runs fn against an order repository bound to one transaction
type OrderTxRunner interface {
	RunInTx(fn func(repo OrderRepository) error) error
}

// BillingTxRunner runs fn against order and invoice repositories bound to the
// same transaction, so invoice creation and the order status flip commit or
// roll back together.
type BillingTxRunner interface {
	RunInTx(fn func(orders OrderRepository, invoices invoicedomain.InvoiceRepository) error) error
}
