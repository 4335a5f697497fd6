package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/order/domain"
	"github.com/storeops/backoffice/internal/order/repository"
	"github.com/storeops/backoffice/internal/order/usecase/command"
	"github.com/storeops/backoffice/internal/order/usecase/query"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// ProvideOrderTxRunner provides the transactional order runner
func ProvideOrderTxRunner(db *gorm.DB) domain.OrderTxRunner {
	return repository.NewGormOrderTxRunner(db)
}

// ProvideBillingTxRunner provides the order+invoice transaction runner
func ProvideBillingTxRunner(db *gorm.DB) domain.BillingTxRunner {
	return repository.NewGormBillingTxRunner(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideOrderTxRunner,
	ProvideBillingTxRunner,
)

var UseCaseSet = wire.NewSet(
	command.NewCreateOrderHandler,
	command.NewUpdateOrderHandler,
	command.NewCreateInvoiceHandler,
	query.NewGetOrderHandler,
	query.NewListOrdersHandler,
)
