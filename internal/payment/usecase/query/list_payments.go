package query

import (
	"github.com/storeops/backoffice/internal/payment/domain"
)

// ListPaymentsQuery represents the query to list workspace payments
type ListPaymentsQuery struct {
	WorkspaceID uint
	Limit       int
	Offset      int
}

// ListPaymentsHandler handles list payments queries
type ListPaymentsHandler struct {
	payments domain.PaymentRepository
}

// NewListPaymentsHandler creates a new list payments handler
func NewListPaymentsHandler(payments domain.PaymentRepository) *ListPaymentsHandler {
	return &ListPaymentsHandler{payments: payments}
}

// Handle executes the query
func (h *ListPaymentsHandler) Handle(q ListPaymentsQuery) ([]domain.Payment, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return h.payments.FindByWorkspace(q.WorkspaceID, limit, offset)
}
