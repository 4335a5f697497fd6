package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/internal/payment/provider"
	"github.com/storeops/backoffice/pkg/logger"
)

// StartPaymentCommand represents the command to open a gateway transaction
type StartPaymentCommand struct {
	WorkspaceID uint
	OrderID     *uint
	InvoiceID   *uint
	Amount      float64
	Method      string
}

// StartPaymentResult carries the created payment and the gateway redirect URL
type StartPaymentResult struct {
	Payment     *domain.Payment
	RedirectURL string
}

// StartPaymentHandler handles payment initiation
type StartPaymentHandler struct {
	payments  domain.PaymentRepository
	gateways  domain.GatewayConfigRepository
	providers *provider.Registry
}

// NewStartPaymentHandler creates a new start payment handler
func NewStartPaymentHandler(payments domain.PaymentRepository, gateways domain.GatewayConfigRepository, providers *provider.Registry) *StartPaymentHandler {
	return &StartPaymentHandler{payments: payments, gateways: gateways, providers: providers}
}

// Handle resolves the workspace's default gateway, records a PENDING payment
// and returns the gateway redirect URL. No payment row is written when the
// workspace has no usable gateway.
func (h *StartPaymentHandler) Handle(ctx context.Context, cmd StartPaymentCommand) (*StartPaymentResult, error) {
	if cmd.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	config, err := h.gateways.FindDefault(cmd.WorkspaceID)
	if err != nil {
		return nil, err
	}

	gw, err := h.providers.Get(config.Provider)
	if err != nil {
		return nil, fmt.Errorf("gateway %s is configured but not registered: %w", config.Provider, err)
	}

	payment := &domain.Payment{
		WorkspaceID: cmd.WorkspaceID,
		OrderID:     cmd.OrderID,
		InvoiceID:   cmd.InvoiceID,
		Amount:      cmd.Amount,
		Method:      cmd.Method,
		Status:      domain.StatusPending,
		Provider:    gw.Name(),
		RefID:       uuid.New().String(),
	}
	if err := h.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	logger.Info(ctx).
		Uint("workspace_id", cmd.WorkspaceID).
		Uint("payment_id", payment.ID).
		Str("provider", gw.Name()).
		Str("ref_id", payment.RefID).
		Msg("Payment started")

	return &StartPaymentResult{
		Payment:     payment,
		RedirectURL: gw.PaymentURL(payment.RefID),
	}, nil
}
