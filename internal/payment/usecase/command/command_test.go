package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/backoffice/internal/payment/domain"
	"github.com/storeops/backoffice/internal/payment/provider"
)

// memoryPayments implements PaymentRepository and PaymentTxRunner.
type memoryPayments struct {
	payments map[string]*domain.Payment
	nextID   uint
}

func newMemoryPayments() *memoryPayments {
	return &memoryPayments{payments: make(map[string]*domain.Payment), nextID: 1}
}

func (m *memoryPayments) Create(payment *domain.Payment) error {
	payment.ID = m.nextID
	m.nextID++
	clone := *payment
	m.payments[payment.RefID] = &clone
	return nil
}

func (m *memoryPayments) FindByID(workspaceID, id uint) (*domain.Payment, error) {
	for _, p := range m.payments {
		if p.ID == id && p.WorkspaceID == workspaceID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryPayments) FindByRefID(refID string) (*domain.Payment, error) {
	p, ok := m.payments[refID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memoryPayments) FindByRefIDForUpdate(refID string) (*domain.Payment, error) {
	return m.FindByRefID(refID)
}

func (m *memoryPayments) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if p.WorkspaceID == workspaceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memoryPayments) Save(payment *domain.Payment) error {
	clone := *payment
	m.payments[payment.RefID] = &clone
	return nil
}

func (m *memoryPayments) RunInTx(fn func(domain.PaymentRepository) error) error {
	return fn(m)
}

// memoryGateways implements GatewayConfigRepository.
type memoryGateways struct {
	configs []domain.PaymentGatewayConfig
}

func (m *memoryGateways) Create(config *domain.PaymentGatewayConfig) error {
	m.configs = append(m.configs, *config)
	return nil
}

func (m *memoryGateways) FindDefault(workspaceID uint) (*domain.PaymentGatewayConfig, error) {
	var fallback *domain.PaymentGatewayConfig
	for i := range m.configs {
		c := &m.configs[i]
		if c.WorkspaceID != workspaceID || !c.IsActive {
			continue
		}
		if c.IsDefault {
			return c, nil
		}
		if fallback == nil {
			fallback = c
		}
	}
	if fallback == nil {
		return nil, domain.ErrNoGateway
	}
	return fallback, nil
}

func (m *memoryGateways) FindByWorkspace(workspaceID uint) ([]domain.PaymentGatewayConfig, error) {
	return m.configs, nil
}

// fakeGateway is a scriptable provider.
type fakeGateway struct {
	name      string
	verified  bool
	verifyErr error
	verifies  int
}

func (f *fakeGateway) Name() string { return f.name }

func (f *fakeGateway) PaymentURL(refID string) string {
	return "https://pay.example/" + refID
}

func (f *fakeGateway) ExtractRefID(payload map[string]string) string {
	for _, key := range []string{"ref_id", "authority", "order_id"} {
		if v := payload[key]; v != "" {
			return v
		}
	}
	return ""
}

func (f *fakeGateway) Verify(ctx context.Context, payment *domain.Payment, payload map[string]string) (bool, error) {
	f.verifies++
	return f.verified, f.verifyErr
}

type fakeLocker struct {
	acquired bool
	err      error
	calls    int
}

func (f *fakeLocker) Acquire(ctx context.Context, refID string) (bool, error) {
	f.calls++
	return f.acquired, f.err
}

func activeGateway(providerName string) *memoryGateways {
	return &memoryGateways{configs: []domain.PaymentGatewayConfig{
		{ID: 1, WorkspaceID: 1, Provider: providerName, IsActive: true, IsDefault: true},
	}}
}

func TestStartPayment_CreatesPendingPaymentWithRedirect(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY"}
	handler := NewStartPaymentHandler(payments, activeGateway("TESTPAY"), provider.NewRegistry(gw))

	result, err := handler.Handle(context.Background(), StartPaymentCommand{
		WorkspaceID: 1,
		Amount:      5000,
		Method:      "gateway",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Payment.Status)
	assert.NotEmpty(t, result.Payment.RefID)
	assert.Equal(t, "https://pay.example/"+result.Payment.RefID, result.RedirectURL)
	assert.Len(t, payments.payments, 1)
}

func TestStartPayment_RejectsNonPositiveAmount(t *testing.T) {
	payments := newMemoryPayments()
	handler := NewStartPaymentHandler(payments, activeGateway("TESTPAY"), provider.NewRegistry(&fakeGateway{name: "TESTPAY"}))

	_, err := handler.Handle(context.Background(), StartPaymentCommand{WorkspaceID: 1, Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, payments.payments)
}

func TestStartPayment_NoGatewayWritesNoRow(t *testing.T) {
	payments := newMemoryPayments()
	handler := NewStartPaymentHandler(payments, &memoryGateways{}, provider.NewRegistry(&fakeGateway{name: "TESTPAY"}))

	_, err := handler.Handle(context.Background(), StartPaymentCommand{WorkspaceID: 1, Amount: 100})
	assert.ErrorIs(t, err, domain.ErrNoGateway)
	assert.Empty(t, payments.payments)
}

func startedPayment(t *testing.T, payments *memoryPayments, gw *fakeGateway) *domain.Payment {
	t.Helper()
	handler := NewStartPaymentHandler(payments, activeGateway(gw.name), provider.NewRegistry(gw))
	result, err := handler.Handle(context.Background(), StartPaymentCommand{WorkspaceID: 1, Amount: 5000})
	require.NoError(t, err)
	return result.Payment
}

func TestHandleCallback_VerifiedPaymentSucceeds(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY", verified: true}
	pending := startedPayment(t, payments, gw)

	handler := NewHandleCallbackHandler(payments, payments, provider.NewRegistry(gw), &fakeLocker{acquired: true})
	final, err := handler.Handle(context.Background(), HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"ref_id": pending.RefID, "status": "OK"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, final.Status)
	require.NotNil(t, final.PaidAt)
	assert.Contains(t, final.RawResponse, pending.RefID)
}

func TestHandleCallback_FailedVerificationMarksFailed(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY", verified: false}
	pending := startedPayment(t, payments, gw)

	handler := NewHandleCallbackHandler(payments, payments, provider.NewRegistry(gw), &fakeLocker{acquired: true})
	final, err := handler.Handle(context.Background(), HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"ref_id": pending.RefID},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, final.Status)
	assert.Nil(t, final.PaidAt)
}

func TestHandleCallback_VerifyErrorMarksFailed(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY", verified: true, verifyErr: errors.New("gateway timeout")}
	pending := startedPayment(t, payments, gw)

	handler := NewHandleCallbackHandler(payments, payments, provider.NewRegistry(gw), &fakeLocker{acquired: true})
	final, err := handler.Handle(context.Background(), HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"ref_id": pending.RefID},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, final.Status, "ambiguous verification never leaves the payment pending")
}

func TestHandleCallback_UnknownRefIDMutatesNothing(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY", verified: true}

	handler := NewHandleCallbackHandler(payments, payments, provider.NewRegistry(gw), &fakeLocker{acquired: true})
	_, err := handler.Handle(context.Background(), HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"ref_id": "no-such-ref"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, gw.verifies)
}

func TestHandleCallback_MissingRefID(t *testing.T) {
	gw := &fakeGateway{name: "TESTPAY"}
	handler := NewHandleCallbackHandler(newMemoryPayments(), newMemoryPayments(), provider.NewRegistry(gw), nil)

	_, err := handler.Handle(context.Background(), HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"unrelated": "x"},
	})
	assert.ErrorIs(t, err, domain.ErrMissingRefID)
}

func TestHandleCallback_UnknownProvider(t *testing.T) {
	handler := NewHandleCallbackHandler(newMemoryPayments(), newMemoryPayments(), provider.NewRegistry(), nil)

	_, err := handler.Handle(context.Background(), HandleCallbackCommand{Provider: "NOPE"})
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestHandleCallback_DuplicateCallbackIsNoOp(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY", verified: true}
	pending := startedPayment(t, payments, gw)

	handler := NewHandleCallbackHandler(payments, payments, provider.NewRegistry(gw), &fakeLocker{acquired: true})
	cmd := HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"ref_id": pending.RefID, "status": "OK"},
	}

	first, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSuccess, first.Status)
	paidAt := first.PaidAt

	second, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, second.Status)
	assert.Equal(t, paidAt, second.PaidAt, "second callback must not rewrite the payment")
	assert.Equal(t, 1, gw.verifies, "finalized payments skip gateway verification")
}

func TestHandleCallback_LockContentionDropsDuplicate(t *testing.T) {
	payments := newMemoryPayments()
	gw := &fakeGateway{name: "TESTPAY", verified: true}
	pending := startedPayment(t, payments, gw)

	locker := &fakeLocker{acquired: false}
	handler := NewHandleCallbackHandler(payments, payments, provider.NewRegistry(gw), locker)

	result, err := handler.Handle(context.Background(), HandleCallbackCommand{
		Provider: "TESTPAY",
		Payload:  map[string]string{"ref_id": pending.RefID},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Status, "contended callback leaves finalization to the lock holder")
	assert.Zero(t, gw.verifies)
	assert.Equal(t, 1, locker.calls)
}
