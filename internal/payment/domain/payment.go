package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Payment statuses. PENDING is the only non-terminal status.
const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Gateway providers
const (
	ProviderZarinpal = "ZARINPAL"
	ProviderIDPay    = "IDPAY"
)

var (
	ErrNotFound           = errors.New("payment not found")
	ErrInvalidAmount      = errors.New("payment amount must be positive")
	ErrNoGateway          = errors.New("no active payment gateway configured")
	ErrUnknownProvider    = errors.New("unknown payment provider")
	ErrMissingRefID       = errors.New("callback payload carries no reference id")
	ErrAlreadyFinalized   = errors.New("payment already finalized")
	ErrVerificationFailed = errors.New("gateway verification failed")
)

// Payment represents a single gateway transaction attempt
type Payment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	WorkspaceID uint           `json:"workspace_id" gorm:"not null;index"`
	OrderID     *uint          `json:"order_id,omitempty" gorm:"index"`
	InvoiceID   *uint          `json:"invoice_id,omitempty" gorm:"index"`
	Amount      float64        `json:"amount" gorm:"not null"`
	Method      string         `json:"method"`
	Status      string         `json:"status" gorm:"default:'PENDING';index"`
	Provider    string         `json:"provider" gorm:"not null"`
	RefID       string         `json:"ref_id" gorm:"uniqueIndex;size:64"`
	RawResponse string         `json:"raw_response,omitempty" gorm:"type:text"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// Finalized reports whether the payment reached a terminal status.
func (p *Payment) Finalized() bool {
	return p.Status != StatusPending
}

// PaymentGatewayConfig holds per-workspace gateway credentials
type PaymentGatewayConfig struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorkspaceID uint      `json:"workspace_id" gorm:"not null;index"`
	Provider    string    `json:"provider" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	IsDefault   bool      `json:"is_default" gorm:"default:false"`
	Config      string    `json:"config" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (PaymentGatewayConfig) TableName() string {
	return "payment_gateway_configs"
}

// PaymentRepository defines the contract for payment data access
type PaymentRepository interface {
	Create(payment *Payment) error
	FindByID(workspaceID, id uint) (*Payment, error)
	FindByRefID(refID string) (*Payment, error)
	FindByRefIDForUpdate(refID string) (*Payment, error)
	FindByWorkspace(workspaceID uint, limit, offset int) ([]Payment, error)
	Save(payment *Payment) error
}

// GatewayConfigRepository defines the contract for gateway config access
type GatewayConfigRepository interface {
	Create(config *PaymentGatewayConfig) error
	FindDefault(workspaceID uint) (*PaymentGatewayConfig, error)
	FindByWorkspace(workspaceID uint) ([]PaymentGatewayConfig, error)
}

// PaymentTxRunner executes a unit of work against the payment store in a
// single transaction.
type PaymentTxRunner interface {
	RunInTx(fn func(payments PaymentRepository) error) error
}
