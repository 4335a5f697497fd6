package domain

import (
	"errors"
	"time"
)

// Shipping method pricing types
const (
	TypeFixed       = "FIXED"
	TypeByWeight    = "BY_WEIGHT"
	TypeByCartValue = "BY_CART_VALUE"
	TypeByDistance  = "BY_DISTANCE"
)

var (
	ErrMethodNotFound = errors.New("shipping: method not found")
	ErrMethodInactive = errors.New("shipping: method is inactive")
	ErrUnknownType    = errors.New("shipping: unknown pricing type")
)

// MethodSettings is the free-form settings blob of a shipping method
type MethodSettings struct {
	FreeShippingThreshold float64 `json:"free_shipping_threshold,omitempty"`
}

// ShippingMethod prices deliveries for a workspace
type ShippingMethod struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorkspaceID uint      `json:"workspace_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Type        string    `json:"type" gorm:"not null"`
	BasePrice   float64   `json:"base_price" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	Settings    string    `json:"settings" gorm:"type:text"` // JSON MethodSettings
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (ShippingMethod) TableName() string {
	return "shipping_methods"
}

// ShippingZone groups destination provinces and cities
type ShippingZone struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorkspaceID uint      `json:"workspace_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Provinces   string    `json:"provinces" gorm:"type:text"` // comma-separated
	Cities      string    `json:"cities" gorm:"type:text"`    // comma-separated
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (ShippingZone) TableName() string {
	return "shipping_zones"
}

// ShippingZoneRate carries the per-method extra cost of a zone
type ShippingZoneRate struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	ShippingMethodID uint    `json:"shipping_method_id" gorm:"not null;index"`
	ShippingZoneID   uint    `json:"shipping_zone_id" gorm:"not null;index"`
	ExtraCost        float64 `json:"extra_cost"`
}

// TableName specifies the table name
func (ShippingZoneRate) TableName() string {
	return "shipping_zone_rates"
}

// Destination is a shipping target used for zone resolution
type Destination struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

// MethodRepository defines the contract for shipping method data access
type MethodRepository interface {
	Create(method *ShippingMethod) error
	FindByID(workspaceID, id uint) (*ShippingMethod, error)
	FindByWorkspace(workspaceID uint) ([]ShippingMethod, error)
}

// ZoneRepository defines the contract for zone data access
type ZoneRepository interface {
	FindByWorkspace(workspaceID uint) ([]ShippingZone, error)
	FindRate(methodID, zoneID uint) (*ShippingZoneRate, error)
}
