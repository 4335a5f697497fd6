package shipping

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/shipping/domain"
	"github.com/storeops/backoffice/internal/shipping/repository"
	"github.com/storeops/backoffice/internal/shipping/usecase/query"
)

// ProvideMethodRepository provides the shipping method repository
func ProvideMethodRepository(db *gorm.DB) domain.MethodRepository {
	return repository.NewGormMethodRepository(db)
}

// ProvideZoneRepository provides the shipping zone repository
func ProvideZoneRepository(db *gorm.DB) domain.ZoneRepository {
	return repository.NewGormZoneRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideMethodRepository,
	ProvideZoneRepository,
)

var UseCaseSet = wire.NewSet(
	query.NewCalculateCostHandler,
)
