//go:build wireinject
// +build wireinject

package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/payment/delivery/http"
	"github.com/storeops/backoffice/internal/payment/provider"
	"github.com/storeops/backoffice/internal/payment/usecase/command"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, providers *provider.Registry, locker command.CallbackLocker) (*http.PaymentHandler, error) {
	wire.Build(
		RepositorySet,
		UseCaseSet,
		http.NewPaymentHandler,
	)
	return nil, nil
}
