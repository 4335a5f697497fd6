//go:build wireinject
// +build wireinject

package shipping

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/shipping/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ShippingHandler, error) {
	wire.Build(
		RepositorySet,
		UseCaseSet,
		http.NewShippingHandler,
	)
	return nil, nil
}
