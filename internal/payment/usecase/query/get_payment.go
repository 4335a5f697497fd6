package query

import (
	"github.com/storeops/backoffice/internal/payment/domain"
)

// GetPaymentQuery represents the query to get a payment by ID
type GetPaymentQuery struct {
	WorkspaceID uint
	ID          uint
}

// GetPaymentHandler handles get payment queries
type GetPaymentHandler struct {
	payments domain.PaymentRepository
}

// NewGetPaymentHandler creates a new get payment handler
func NewGetPaymentHandler(payments domain.PaymentRepository) *GetPaymentHandler {
	return &GetPaymentHandler{payments: payments}
}

// Handle executes the query
func (h *GetPaymentHandler) Handle(q GetPaymentQuery) (*domain.Payment, error) {
	return h.payments.FindByID(q.WorkspaceID, q.ID)
}
