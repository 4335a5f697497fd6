//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/inventory/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		UseCaseSet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
