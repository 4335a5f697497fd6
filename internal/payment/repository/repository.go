package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storeops/backoffice/internal/payment/domain"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(payment *domain.Payment) error {
	return r.db.Create(payment).Error
}

func (r *GormPaymentRepository) FindByID(workspaceID, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.Where("workspace_id = ?", workspaceID).First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByRefID(refID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.Where("ref_id = ?", refID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByRefIDForUpdate locks the payment row for the rest of the transaction.
func (r *GormPaymentRepository) FindByRefIDForUpdate(refID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("ref_id = ?", refID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.Where("workspace_id = ?", workspaceID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *GormPaymentRepository) Save(payment *domain.Payment) error {
	return r.db.Save(payment).Error
}

type GormGatewayConfigRepository struct {
	db *gorm.DB
}

func NewGormGatewayConfigRepository(db *gorm.DB) *GormGatewayConfigRepository {
	return &GormGatewayConfigRepository{db: db}
}

func (r *GormGatewayConfigRepository) Create(config *domain.PaymentGatewayConfig) error {
	return r.db.Create(config).Error
}

// FindDefault returns the default active gateway for the workspace, falling
// back to any active gateway when none is flagged default.
func (r *GormGatewayConfigRepository) FindDefault(workspaceID uint) (*domain.PaymentGatewayConfig, error) {
	var config domain.PaymentGatewayConfig
	err := r.db.Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Order("is_default DESC, id ASC").
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoGateway
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *GormGatewayConfigRepository) FindByWorkspace(workspaceID uint) ([]domain.PaymentGatewayConfig, error) {
	var configs []domain.PaymentGatewayConfig
	err := r.db.Where("workspace_id = ?", workspaceID).Order("id ASC").Find(&configs).Error
	return configs, err
}

// GormPaymentTxRunner runs payment mutations inside a database transaction.
type GormPaymentTxRunner struct {
	db *gorm.DB
}

func NewGormPaymentTxRunner(db *gorm.DB) *GormPaymentTxRunner {
	return &GormPaymentTxRunner{db: db}
}

func (r *GormPaymentTxRunner) RunInTx(fn func(payments domain.PaymentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormPaymentRepository(tx))
	})
}
