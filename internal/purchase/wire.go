//go:build wireinject
// +build wireinject

package purchase

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/purchase/delivery/http"
	"github.com/storeops/backoffice/internal/purchase/usecase/command"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, inventory command.StockReceiver) (*http.PurchaseHandler, error) {
	wire.Build(
		RepositorySet,
		UseCaseSet,
		http.NewPurchaseHandler,
	)
	return nil, nil
}
