package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/invoice/domain"
)

type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{})
}

func (r *GormInvoiceRepository) Create(invoice *domain.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *GormInvoiceRepository) FindByID(workspaceID, id uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.Preload("Items").
		Where("workspace_id = ?", workspaceID).
		First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindByOrderID(workspaceID, orderID uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.Preload("Items").
		Where("workspace_id = ? AND order_id = ?", workspaceID, orderID).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.Preload("Items").
		Where("workspace_id = ?", workspaceID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}
