package purchase

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/purchase/domain"
	"github.com/storeops/backoffice/internal/purchase/repository"
	"github.com/storeops/backoffice/internal/purchase/usecase/command"
	"github.com/storeops/backoffice/internal/purchase/usecase/query"
)

// ProvidePurchaseOrderRepository provides the purchase order repository
func ProvidePurchaseOrderRepository(db *gorm.DB) domain.PurchaseOrderRepository {
	return repository.NewGormPurchaseOrderRepository(db)
}

// ProvidePurchaseTxRunner provides the transactional purchase runner
func ProvidePurchaseTxRunner(db *gorm.DB) domain.PurchaseTxRunner {
	return repository.NewGormPurchaseTxRunner(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePurchaseOrderRepository,
	ProvidePurchaseTxRunner,
)

var UseCaseSet = wire.NewSet(
	command.NewCreatePurchaseOrderHandler,
	command.NewReceivePurchaseOrderHandler,
	query.NewGetPurchaseOrderHandler,
	query.NewListPurchaseOrdersHandler,
)
