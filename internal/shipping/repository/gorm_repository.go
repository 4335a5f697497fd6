package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/shipping/domain"
)

type GormMethodRepository struct {
	db *gorm.DB
}

func NewGormMethodRepository(db *gorm.DB) *GormMethodRepository {
	return &GormMethodRepository{db: db}
}

func (r *GormMethodRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.ShippingMethod{}, &domain.ShippingZone{}, &domain.ShippingZoneRate{})
}

func (r *GormMethodRepository) Create(method *domain.ShippingMethod) error {
	return r.db.Create(method).Error
}

func (r *GormMethodRepository) FindByID(workspaceID, id uint) (*domain.ShippingMethod, error) {
	var method domain.ShippingMethod
	err := r.db.Where("workspace_id = ?", workspaceID).First(&method, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMethodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *GormMethodRepository) FindByWorkspace(workspaceID uint) ([]domain.ShippingMethod, error) {
	var methods []domain.ShippingMethod
	err := r.db.Where("workspace_id = ?", workspaceID).Order("id ASC").Find(&methods).Error
	return methods, err
}

type GormZoneRepository struct {
	db *gorm.DB
}

func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

func (r *GormZoneRepository) FindByWorkspace(workspaceID uint) ([]domain.ShippingZone, error) {
	var zones []domain.ShippingZone
	err := r.db.Where("workspace_id = ?", workspaceID).Order("id ASC").Find(&zones).Error
	return zones, err
}

func (r *GormZoneRepository) FindRate(methodID, zoneID uint) (*domain.ShippingZoneRate, error) {
	var rate domain.ShippingZoneRate
	err := r.db.Where("shipping_method_id = ? AND shipping_zone_id = ?", methodID, zoneID).
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
