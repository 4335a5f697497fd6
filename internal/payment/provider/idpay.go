package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/pkg/logger"
)

const (
	idpayVerifyURL = "https://api.idpay.ir/v1.1/payment/verify"
	idpayPayURL    = "https://idpay.ir/p/ws/%s"
)

// IDPay integrates the IDPay gateway.
type IDPay struct {
	apiKey  string
	sandbox bool
	client  *http.Client
}

// NewIDPay creates an IDPay provider with the given API key.
func NewIDPay(apiKey string, sandbox bool) *IDPay {
	return &IDPay{
		apiKey:  apiKey,
		sandbox: sandbox,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (i *IDPay) Name() string {
	return domain.ProviderIDPay
}

func (i *IDPay) PaymentURL(refID string) string {
	return fmt.Sprintf(idpayPayURL, refID)
}

func (i *IDPay) ExtractRefID(payload map[string]string) string {
	return firstNonEmpty(payload, "order_id", "id", "track_id")
}

type idpayVerifyRequest struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
}

type idpayVerifyResponse struct {
	Status  int    `json:"status"`
	TrackID int64  `json:"track_id"`
	ID      string `json:"id"`
}

// Verify checks the transaction against IDPay. Status 100 means verified,
// 101 means already verified on the gateway side.
func (i *IDPay) Verify(ctx context.Context, payment *domain.Payment, payload map[string]string) (bool, error) {
	body, err := json.Marshal(idpayVerifyRequest{
		ID:      firstNonEmpty(payload, "id", "track_id"),
		OrderID: payment.RefID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, idpayVerifyURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", i.apiKey)
	if i.sandbox {
		req.Header.Set("X-SANDBOX", "1")
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("idpay verify call failed: %w", err)
	}
	defer resp.Body.Close()

	var result idpayVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode verify response: %w", err)
	}

	logger.Info(ctx).
		Str("ref_id", payment.RefID).
		Int("status", result.Status).
		Msg("IDPay verification completed")

	return result.Status == 100 || result.Status == 101, nil
}
