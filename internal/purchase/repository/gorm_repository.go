package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storeops/backoffice/internal/purchase/domain"
)

type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

func (r *GormPurchaseOrderRepository) Create(order *domain.PurchaseOrder) error {
	return r.db.Create(order).Error
}

func (r *GormPurchaseOrderRepository) FindByID(workspaceID, id uint) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
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

// FindByIDForUpdate locks the order row for the rest of the transaction.
// Items are loaded separately because FOR UPDATE does not compose with joins
// on all postgres versions.
func (r *GormPurchaseOrderRepository) FindByIDForUpdate(workspaceID, id uint) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("workspace_id = ?", workspaceID).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("purchase_order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormPurchaseOrderRepository) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.PurchaseOrder, error) {
	var orders []domain.PurchaseOrder
	err := r.db.Preload("Items").
		Where("workspace_id = ?", workspaceID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *GormPurchaseOrderRepository) Save(order *domain.PurchaseOrder) error {
	return r.db.Omit("Items").Save(order).Error
}

// GormPurchaseTxRunner runs purchase mutations inside a database transaction.
type GormPurchaseTxRunner struct {
	db *gorm.DB
}

func NewGormPurchaseTxRunner(db *gorm.DB) *GormPurchaseTxRunner {
	return &GormPurchaseTxRunner{db: db}
}

func (r *GormPurchaseTxRunner) RunInTx(fn func(orders domain.PurchaseOrderRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormPurchaseOrderRepository(tx))
	})
}
