package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storeops/backoffice/internal/inventory/domain"
)

type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockMovement{}, &domain.Warehouse{}, &domain.StockLevel{})
}

func (r *GormMovementRepository) Create(movement *domain.StockMovement) error {
	return r.db.Create(movement).Error
}

func (r *GormMovementRepository) SumByStock(workspaceID, warehouseID, productID uint) (int, error) {
	var total int64
	err := r.db.Model(&domain.StockMovement{}).
		Where("workspace_id = ? AND warehouse_id = ? AND product_id = ?", workspaceID, warehouseID, productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *GormMovementRepository) SumReservedByOrder(workspaceID, orderID uint) (map[domain.StockKey]int, error) {
	var rows []struct {
		WarehouseID uint
		ProductID   uint
		Total       int
	}
	err := r.db.Model(&domain.StockMovement{}).
		Where("workspace_id = ? AND order_id = ? AND type = ?", workspaceID, orderID, domain.MovementReservation).
		Select("warehouse_id, product_id, COALESCE(SUM(quantity), 0) AS total").
		Group("warehouse_id, product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	reserved := make(map[domain.StockKey]int, len(rows))
	for _, row := range rows {
		reserved[domain.StockKey{WarehouseID: row.WarehouseID, ProductID: row.ProductID}] = row.Total
	}
	return reserved, nil
}

func (r *GormMovementRepository) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("workspace_id = ?", workspaceID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindByOrderID(workspaceID, orderID uint) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("workspace_id = ? AND order_id = ?", workspaceID, orderID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}

type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) Create(warehouse *domain.Warehouse) error {
	return r.db.Create(warehouse).Error
}

func (r *GormWarehouseRepository) FindByID(id uint) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := r.db.First(&warehouse, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrWarehouseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

// FindDefault returns the first active warehouse of the workspace. Workspaces
// are expected to have at least one; callers treat absence as a soft failure.
func (r *GormWarehouseRepository) FindDefault(workspaceID uint) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := r.db.Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Order("id ASC").
		First(&warehouse).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoWarehouse
	}
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindByWorkspace(workspaceID uint) ([]domain.Warehouse, error) {
	var warehouses []domain.Warehouse
	err := r.db.Where("workspace_id = ?", workspaceID).
		Order("id ASC").
		Find(&warehouses).Error
	return warehouses, err
}

type GormStockLevelRepository struct {
	db *gorm.DB
}

func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// GetForUpdate loads (creating if absent) the stock-level row for the pair and
// takes a row lock on it. Inside a transaction this serializes all concurrent
// movements for the same (product, warehouse).
func (r *GormStockLevelRepository) GetForUpdate(workspaceID, warehouseID, productID uint) (*domain.StockLevel, error) {
	level := domain.StockLevel{
		WorkspaceID: workspaceID,
		WarehouseID: warehouseID,
		ProductID:   productID,
	}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&level).Error
	if err != nil {
		return nil, err
	}

	var locked domain.StockLevel
	err = r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("workspace_id = ? AND warehouse_id = ? AND product_id = ?", workspaceID, warehouseID, productID).
		First(&locked).Error
	if err != nil {
		return nil, err
	}
	return &locked, nil
}

func (r *GormStockLevelRepository) Upsert(level *domain.StockLevel) error {
	level.UpdatedAt = time.Now()
	return r.db.Save(level).Error
}

// GormLedgerTxRunner binds movement and stock-level repositories to a single
// database transaction.
type GormLedgerTxRunner struct {
	db *gorm.DB
}

func NewGormLedgerTxRunner(db *gorm.DB) *GormLedgerTxRunner {
	return &GormLedgerTxRunner{db: db}
}

func (r *GormLedgerTxRunner) RunInTx(fn func(movements domain.MovementRepository, levels domain.StockLevelRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormMovementRepository(tx), NewGormStockLevelRepository(tx))
	})
}
