package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invcommand "github.com/storeops/backoffice/internal/inventory/usecase/command"
	invoicedomain "github.com/storeops/backoffice/internal/invoice/domain"
	"github.com/storeops/backoffice/internal/notification"
	"github.com/storeops/backoffice/internal/order/domain"
	"github.com/storeops/backoffice/kafka"
)

// memoryOrders implements OrderRepository and OrderTxRunner.
type memoryOrders struct {
	orders map[uint]*domain.Order
	nextID uint
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: make(map[uint]*domain.Order), nextID: 1}
}

func (m *memoryOrders) Create(order *domain.Order) error {
	order.ID = m.nextID
	m.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	clone := *order
	m.orders[order.ID] = &clone
	return nil
}

func (m *memoryOrders) FindByID(workspaceID, id uint) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok || order.WorkspaceID != workspaceID {
		return nil, domain.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (m *memoryOrders) FindByIDForUpdate(workspaceID, id uint) (*domain.Order, error) {
	return m.FindByID(workspaceID, id)
}

func (m *memoryOrders) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range m.orders {
		if order.WorkspaceID == workspaceID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *memoryOrders) Save(order *domain.Order) error {
	clone := *order
	m.orders[order.ID] = &clone
	return nil
}

func (m *memoryOrders) RunInTx(fn func(domain.OrderRepository) error) error {
	return fn(m)
}

// fakeInventory records reserve and release calls.
type fakeInventory struct {
	reserved   []uint
	released   []uint
	reserveErr error
	releaseErr error
}

func (f *fakeInventory) ReserveOrder(workspaceID, orderID uint, lines []invcommand.ReservationLine) error {
	f.reserved = append(f.reserved, orderID)
	return f.reserveErr
}

func (f *fakeInventory) ReleaseOrder(workspaceID, orderID uint) error {
	f.released = append(f.released, orderID)
	return f.releaseErr
}

// fakeNotifier records notifications.
type fakeNotifier struct {
	sent []notification.Notification
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, n notification.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

// fakePublisher records status events.
type fakePublisher struct {
	events []kafka.OrderStatusChangedEvent
}

func (f *fakePublisher) PublishOrderStatusChanged(ctx context.Context, event kafka.OrderStatusChangedEvent) error {
	f.events = append(f.events, event)
	return nil
}

// memoryInvoices implements invoicedomain.InvoiceRepository.
type memoryInvoices struct {
	invoices map[uint]*invoicedomain.Invoice
	nextID   uint
}

func newMemoryInvoices() *memoryInvoices {
	return &memoryInvoices{invoices: make(map[uint]*invoicedomain.Invoice), nextID: 1}
}

func (m *memoryInvoices) Create(invoice *invoicedomain.Invoice) error {
	if invoice.OrderID != nil {
		for _, existing := range m.invoices {
			if existing.OrderID != nil && *existing.OrderID == *invoice.OrderID {
				return fmt.Errorf("duplicate order_id")
			}
		}
	}
	invoice.ID = m.nextID
	m.nextID++
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *memoryInvoices) FindByID(workspaceID, id uint) (*invoicedomain.Invoice, error) {
	invoice, ok := m.invoices[id]
	if !ok || invoice.WorkspaceID != workspaceID {
		return nil, invoicedomain.ErrNotFound
	}
	return invoice, nil
}

func (m *memoryInvoices) FindByOrderID(workspaceID, orderID uint) (*invoicedomain.Invoice, error) {
	for _, invoice := range m.invoices {
		if invoice.WorkspaceID == workspaceID && invoice.OrderID != nil && *invoice.OrderID == orderID {
			return invoice, nil
		}
	}
	return nil, invoicedomain.ErrNotFound
}

func (m *memoryInvoices) FindByWorkspace(workspaceID uint, limit, offset int) ([]invoicedomain.Invoice, error) {
	var out []invoicedomain.Invoice
	for _, invoice := range m.invoices {
		if invoice.WorkspaceID == workspaceID {
			out = append(out, *invoice)
		}
	}
	return out, nil
}

// billingRunner binds the two memory repositories like the gorm runner does.
type billingRunner struct {
	orders   *memoryOrders
	invoices *memoryInvoices
}

func (b billingRunner) RunInTx(fn func(domain.OrderRepository, invoicedomain.InvoiceRepository) error) error {
	return fn(b.orders, b.invoices)
}

func createCmd() CreateOrderCommand {
	return CreateOrderCommand{
		WorkspaceID:  1,
		BuyerRef:     "buyer-42",
		Subtotal:     200,
		Tax:          10,
		ShippingCost: 15,
		Total:        225,
		Items: []OrderItemInput{
			{ProductID: 10, Quantity: 2, UnitPrice: 100},
		},
	}
}

func TestCreateOrder_PersistsReservesAndNotifies(t *testing.T) {
	repo := newMemoryOrders()
	inv := &fakeInventory{}
	notif := &fakeNotifier{}
	handler := NewCreateOrderHandler(repo, inv, notif)

	order, err := handler.Handle(context.Background(), createCmd())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, order.Status)
	assert.Equal(t, uint(1), order.Version)
	assert.InDelta(t, 200.0, order.Items[0].Total, 0.001)

	assert.Equal(t, []uint{order.ID}, inv.reserved)
	require.Len(t, notif.sent, 2)
	assert.True(t, notif.sent[0].SendSMS, "buyer notification goes out by SMS")
	assert.False(t, notif.sent[1].SendSMS, "admin notification is in-app only")
}

func TestCreateOrder_ValidationFailureCreatesNothing(t *testing.T) {
	repo := newMemoryOrders()
	inv := &fakeInventory{}
	handler := NewCreateOrderHandler(repo, inv, &fakeNotifier{})

	cmd := createCmd()
	cmd.Total = 9999

	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)
	assert.Empty(t, repo.orders)
	assert.Empty(t, inv.reserved)
}

func TestCreateOrder_SideEffectFailuresDoNotFailOrder(t *testing.T) {
	repo := newMemoryOrders()
	inv := &fakeInventory{reserveErr: errors.New("ledger down")}
	notif := &fakeNotifier{err: errors.New("kafka down")}
	handler := NewCreateOrderHandler(repo, inv, notif)

	order, err := handler.Handle(context.Background(), createCmd())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func seedOrder(t *testing.T, repo *memoryOrders, status domain.Status) *domain.Order {
	t.Helper()
	handler := NewCreateOrderHandler(repo, &fakeInventory{}, &fakeNotifier{})
	order, err := handler.Handle(context.Background(), createCmd())
	require.NoError(t, err)
	if status != domain.StatusNew {
		order.Status = status
		require.NoError(t, repo.Save(order))
	}
	return order
}

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestUpdateOrder_LegalTransition(t *testing.T) {
	repo := newMemoryOrders()
	order := seedOrder(t, repo, domain.StatusNew)
	notif := &fakeNotifier{}
	pub := &fakePublisher{}
	handler := NewUpdateOrderHandler(repo, &fakeInventory{}, notif, pub)

	updated, err := handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID: 1,
		OrderID:     order.ID,
		Status:      statusPtr(domain.StatusPendingPayment),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, updated.Status)
	assert.Equal(t, order.Version+1, updated.Version)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "NEW", pub.events[0].OldStatus)
	assert.Equal(t, "PENDING_PAYMENT", pub.events[0].NewStatus)
	assert.Len(t, notif.sent, 2)
}

func TestUpdateOrder_IllegalTransitionRejected(t *testing.T) {
	repo := newMemoryOrders()
	order := seedOrder(t, repo, domain.StatusNew)
	handler := NewUpdateOrderHandler(repo, &fakeInventory{}, &fakeNotifier{}, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID: 1,
		OrderID:     order.ID,
		Status:      statusPtr(domain.StatusShipped),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := repo.FindByID(1, order.ID)
	assert.Equal(t, domain.StatusNew, stored.Status, "rejected update must not mutate the order")
}

func TestUpdateOrder_UnknownStatusRejected(t *testing.T) {
	repo := newMemoryOrders()
	order := seedOrder(t, repo, domain.StatusNew)
	handler := NewUpdateOrderHandler(repo, &fakeInventory{}, &fakeNotifier{}, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID: 1,
		OrderID:     order.ID,
		Status:      statusPtr(domain.Status("DELIVERED")),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestUpdateOrder_StaleVersionRejected(t *testing.T) {
	repo := newMemoryOrders()
	order := seedOrder(t, repo, domain.StatusNew)
	handler := NewUpdateOrderHandler(repo, &fakeInventory{}, &fakeNotifier{}, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID: 1,
		OrderID:     order.ID,
		Status:      statusPtr(domain.StatusPendingPayment),
		Version:     order.Version + 7,
	})
	assert.ErrorIs(t, err, domain.ErrStaleVersion)
}

func TestUpdateOrder_CancelReleasesReservationsOnce(t *testing.T) {
	repo := newMemoryOrders()
	order := seedOrder(t, repo, domain.StatusNew)
	inv := &fakeInventory{}
	handler := NewUpdateOrderHandler(repo, inv, &fakeNotifier{}, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID: 1,
		OrderID:     order.ID,
		Status:      statusPtr(domain.StatusCanceled),
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{order.ID}, inv.released)

	// CANCELED to CANCELED is a no-op write: no second release.
	_, err = handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID: 1,
		OrderID:     order.ID,
		Status:      statusPtr(domain.StatusCanceled),
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{order.ID}, inv.released, "repeated cancel must not release twice")
}

func TestUpdateOrder_SameStatusSkipsSideEffects(t *testing.T) {
	repo := newMemoryOrders()
	order := seedOrder(t, repo, domain.StatusNew)
	notif := &fakeNotifier{}
	pub := &fakePublisher{}
	handler := NewUpdateOrderHandler(repo, &fakeInventory{}, notif, pub)

	method := "card"
	_, err := handler.Handle(context.Background(), UpdateOrderCommand{
		WorkspaceID:   1,
		OrderID:       order.ID,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Empty(t, notif.sent)
	assert.Empty(t, pub.events)
}

func TestCreateInvoice_CopiesItemsAndMarksOrderPaid(t *testing.T) {
	orders := newMemoryOrders()
	order := seedOrder(t, orders, domain.StatusNew)
	invoices := newMemoryInvoices()
	handler := NewCreateInvoiceHandler(billingRunner{orders, invoices})

	invoice, err := handler.Handle(context.Background(), CreateInvoiceCommand{WorkspaceID: 1, OrderID: order.ID})
	require.NoError(t, err)

	assert.Equal(t, invoicedomain.TypeSales, invoice.Type)
	assert.Equal(t, invoicedomain.StatusIssued, invoice.Status)
	require.NotNil(t, invoice.OrderID)
	assert.Equal(t, order.ID, *invoice.OrderID)
	require.Len(t, invoice.Items, 1)
	assert.InDelta(t, 200.0, invoice.Subtotal, 0.001)
	assert.InDelta(t, 225.0, invoice.Total, 0.001)

	stored, _ := orders.FindByID(1, order.ID)
	assert.Equal(t, domain.StatusPaid, stored.Status)
}

func TestCreateInvoice_SecondInvoiceRejected(t *testing.T) {
	orders := newMemoryOrders()
	order := seedOrder(t, orders, domain.StatusNew)
	invoices := newMemoryInvoices()
	handler := NewCreateInvoiceHandler(billingRunner{orders, invoices})

	_, err := handler.Handle(context.Background(), CreateInvoiceCommand{WorkspaceID: 1, OrderID: order.ID})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), CreateInvoiceCommand{WorkspaceID: 1, OrderID: order.ID})
	assert.ErrorIs(t, err, invoicedomain.ErrAlreadyExists)
	assert.Len(t, invoices.invoices, 1)
}

func TestCreateInvoice_ShippedOrderKeepsFulfillmentStatus(t *testing.T) {
	orders := newMemoryOrders()
	order := seedOrder(t, orders, domain.StatusShipped)
	invoices := newMemoryInvoices()
	handler := NewCreateInvoiceHandler(billingRunner{orders, invoices})

	_, err := handler.Handle(context.Background(), CreateInvoiceCommand{WorkspaceID: 1, OrderID: order.ID})
	require.NoError(t, err)

	stored, _ := orders.FindByID(1, order.ID)
	assert.Equal(t, domain.StatusShipped, stored.Status)
}

func TestCreateInvoice_UnknownOrder(t *testing.T) {
	handler := NewCreateInvoiceHandler(billingRunner{newMemoryOrders(), newMemoryInvoices()})

	_, err := handler.Handle(context.Background(), CreateInvoiceCommand{WorkspaceID: 1, OrderID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
