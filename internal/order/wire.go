//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/notification"
	"github.com/storeops/backoffice/internal/order/delivery/http"
	"github.com/storeops/backoffice/internal/order/usecase/command"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, inventory command.InventoryService, notifier notification.Notifier, publisher command.StatusEventPublisher) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		UseCaseSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
