package invoice

import (
	"gorm.io/gorm"

	"github.com/storeops/backoffice/internal/invoice/delivery/http"
	"github.com/storeops/backoffice/internal/invoice/domain"
	"github.com/storeops/backoffice/internal/invoice/repository"
)

// ProvideInvoiceRepository provides the invoice repository
func ProvideInvoiceRepository(db *gorm.DB) domain.InvoiceRepository {
	return repository.NewGormInvoiceRepository(db)
}

// InitializeHTTPHandler initializes the read-only invoice handler
func InitializeHTTPHandler(db *gorm.DB) *http.InvoiceHandler {
	return http.NewInvoiceHandler(ProvideInvoiceRepository(db))
}
