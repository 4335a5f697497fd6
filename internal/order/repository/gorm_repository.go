package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invoicedomain "github.com/storeops/backoffice/internal/invoice/domain"
	invoicerepo "github.com/storeops/backoffice/internal/invoice/repository"
	"github.com/storeops/backoffice/internal/order/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

// Create persists the order together with its items in one statement chain;
// gorm cascades the association inside a transaction.
func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Create(order).Error
}

func (r *GormOrderRepository) FindByID(workspaceID, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Items").
		Where("workspace_id = ?", workspaceID).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate loads the order holding a row lock. Meaningful only
// inside a transaction.
func (r *GormOrderRepository) FindByIDForUpdate(workspaceID, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("workspace_id = ?", workspaceID).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").
		Where("workspace_id = ?", workspaceID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) Save(order *domain.Order) error {
	return r.db.Omit("Items").Save(order).Error
}

// GormOrderTxRunner binds an order repository to a single transaction
type GormOrderTxRunner struct {
	db *gorm.DB
}

func NewGormOrderTxRunner(db *gorm.DB) *GormOrderTxRunner {
	return &GormOrderTxRunner{db: db}
}

func (r *GormOrderTxRunner) RunInTx(fn func(repo domain.OrderRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormOrderRepository(tx))
	})
}

// GormBillingTxRunner binds order and invoice repositories to one transaction
type GormBillingTxRunner struct {
	db *gorm.DB
}

func NewGormBillingTxRunner(db *gorm.DB) *GormBillingTxRunner {
	return &GormBillingTxRunner{db: db}
}

func (r *GormBillingTxRunner) RunInTx(fn func(orders domain.OrderRepository, invoices invoicedomain.InvoiceRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormOrderRepository(tx), invoicerepo.NewGormInvoiceRepository(tx))
	})
}
