package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/internal/payment/repository"
	"github.com/storeops/backoffice/internal/payment/usecase/command"
	"github.com/storeops/backoffice/internal/payment/usecase/query"
)

// ProvidePaymentRepository provides the payment repository
func ProvidePaymentRepository(db *gorm.DB) domain.PaymentRepository {
	return repository.NewGormPaymentRepository(db)
}

// ProvideGatewayConfigRepository provides the gateway config repository
func ProvideGatewayConfigRepository(db *gorm.DB) domain.GatewayConfigRepository {
	return repository.NewGormGatewayConfigRepository(db)
}

// ProvidePaymentTxRunner provides the transactional payment runner
func ProvidePaymentTxRunner(db *gorm.DB) domain.PaymentTxRunner {
	return repository.NewGormPaymentTxRunner(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePaymentRepository,
	ProvideGatewayConfigRepository,
	ProvidePaymentTxRunner,
)

var UseCaseSet = wire.NewSet(
	command.NewStartPaymentHandler,
	command.NewHandleCallbackHandler,
	query.NewGetPaymentHandler,
	query.NewListPaymentsHandler,
)
