package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/internal/payment/provider"
	"github.com/storeops/backoffice/pkg/logger"
)

// CallbackLocker serializes concurrent callbacks for the same reference id.
type CallbackLocker interface {
	Acquire(ctx context.Context, refID string) (bool, error)
}

// HandleCallbackCommand represents an incoming gateway callback
type HandleCallbackCommand struct {
	Provider string
	Payload  map[string]string
}

// HandleCallbackHandler finalizes payments from gateway callbacks
type HandleCallbackHandler struct {
	txRunner  domain.PaymentTxRunner
	payments  domain.PaymentRepository
	providers *provider.Registry
	locker    CallbackLocker
}

// NewHandleCallbackHandler creates a new callback handler
func NewHandleCallbackHandler(txRunner domain.PaymentTxRunner, payments domain.PaymentRepository, providers *provider.Registry, locker CallbackLocker) *HandleCallbackHandler {
	return &HandleCallbackHandler{txRunner: txRunner, payments: payments, providers: providers, locker: locker}
}

// Handle verifies the transaction with the gateway and moves the payment to
// SUCCESS or FAILED. Callbacks are idempotent: a payment that already left
// PENDING is returned unchanged, and concurrent callbacks for the same
// reference id are serialized through the locker.
func (h *HandleCallbackHandler) Handle(ctx context.Context, cmd HandleCallbackCommand) (*domain.Payment, error) {
	gw, err := h.providers.Get(cmd.Provider)
	if err != nil {
		return nil, err
	}

	refID := gw.ExtractRefID(cmd.Payload)
	if refID == "" {
		return nil, domain.ErrMissingRefID
	}

	payment, err := h.payments.FindByRefID(refID)
	if err != nil {
		return nil, err
	}
	if payment.Finalized() {
		logger.Info(ctx).Str("ref_id", refID).Str("status", payment.Status).Msg("Callback for finalized payment ignored")
		return payment, nil
	}

	if h.locker != nil {
		acquired, err := h.locker.Acquire(ctx, refID)
		if err != nil {
			logger.Error(ctx).Err(err).Str("ref_id", refID).Msg("Callback lock unavailable, proceeding with row lock only")
		} else if !acquired {
			logger.Info(ctx).Str("ref_id", refID).Msg("Duplicate callback dropped")
			return payment, nil
		}
	}

	// Verification happens before the transaction opens so the row lock is
	// never held across a gateway round trip.
	verified, verifyErr := gw.Verify(ctx, payment, cmd.Payload)
	if verifyErr != nil {
		logger.Error(ctx).Err(verifyErr).Str("ref_id", refID).Msg("Gateway verification errored, marking payment failed")
	}

	raw, err := json.Marshal(cmd.Payload)
	if err != nil {
		raw = []byte("{}")
	}

	var final *domain.Payment
	err = h.txRunner.RunInTx(func(payments domain.PaymentRepository) error {
		locked, err := payments.FindByRefIDForUpdate(refID)
		if err != nil {
			return err
		}
		if locked.Finalized() {
			final = locked
			return nil
		}

		locked.RawResponse = string(raw)
		if verified && verifyErr == nil {
			now := time.Now()
			locked.Status = domain.StatusSuccess
			locked.PaidAt = &now
		} else {
			locked.Status = domain.StatusFailed
		}
		if err := payments.Save(locked); err != nil {
			return fmt.Errorf("failed to finalize payment: %w", err)
		}
		final = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("ref_id", refID).
		Str("provider", cmd.Provider).
		Str("status", final.Status).
		Msg("Payment callback processed")

	return final, nil
}
