package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/inventory/domain"
	"github.com/storeops/backoffice/internal/inventory/repository"
	"github.com/storeops/backoffice/internal/inventory/usecase/command"
	"github.com/storeops/backoffice/internal/inventory/usecase/query"
)

// ProvideMovementRepository provides the ledger repository
func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepository(db)
}

// ProvideWarehouseRepository provides the warehouse repository
func ProvideWarehouseRepository(db *gorm.DB) domain.WarehouseRepository {
	return repository.NewGormWarehouseRepository(db)
}

// ProvideLedgerTxRunner provides the transactional ledger runner
func ProvideLedgerTxRunner(db *gorm.DB) domain.LedgerTxRunner {
	return repository.NewGormLedgerTxRunner(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideMovementRepository,
	ProvideWarehouseRepository,
	ProvideLedgerTxRunner,
)

var UseCaseSet = wire.NewSet(
	command.NewAdjustStockHandler,
	command.NewCreateWarehouseHandler,
	command.NewReserveOrderHandler,
	command.NewReleaseOrderHandler,
	command.NewReceivePurchaseOrderHandler,
	query.NewCurrentStockHandler,
	query.NewListMovementsHandler,
)
