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
	zarinpalVerifyURL   = "https://api.zarinpal.com/pg/v4/payment/verify.json"
	zarinpalStartPayURL = "https://www.zarinpal.com/pg/StartPay/%s"
)

// Zarinpal integrates the ZarinPal gateway.
type Zarinpal struct {
	merchantID string
	client     *http.Client
}

// NewZarinpal creates a ZarinPal provider with the given merchant id.
func NewZarinpal(merchantID string) *Zarinpal {
	return &Zarinpal{
		merchantID: merchantID,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (z *Zarinpal) Name() string {
	return domain.ProviderZarinpal
}

func (z *Zarinpal) PaymentURL(refID string) string {
	return fmt.Sprintf(zarinpalStartPayURL, refID)
}

func (z *Zarinpal) ExtractRefID(payload map[string]string) string {
	return firstNonEmpty(payload, "Authority", "authority", "ref_id")
}

type zarinpalVerifyRequest struct {
	MerchantID string `json:"merchant_id"`
	Amount     int64  `json:"amount"`
	Authority  string `json:"authority"`
}

type zarinpalVerifyResponse struct {
	Data struct {
		Code  int    `json:"code"`
		RefID int64  `json:"ref_id"`
		Card  string `json:"card_pan"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Verify checks the transaction against ZarinPal. Code 100 means verified,
// 101 means already verified on the gateway side.
func (z *Zarinpal) Verify(ctx context.Context, payment *domain.Payment, payload map[string]string) (bool, error) {
	if status := firstNonEmpty(payload, "Status", "status"); status != "" && status != "OK" {
		return false, nil
	}

	body, err := json.Marshal(zarinpalVerifyRequest{
		MerchantID: z.merchantID,
		Amount:     int64(payment.Amount),
		Authority:  payment.RefID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, zarinpalVerifyURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("zarinpal verify call failed: %w", err)
	}
	defer resp.Body.Close()

	var result zarinpalVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode verify response: %w", err)
	}

	logger.Info(ctx).
		Str("ref_id", payment.RefID).
		Int("code", result.Data.Code).
		Msg("ZarinPal verification completed")

	return result.Data.Code == 100 || result.Data.Code == 101, nil
}
