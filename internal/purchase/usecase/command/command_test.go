package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invcommand "github.com/storeops/backoffice/internal/inventory/usecase/command"
	"github.com/storeops/backoffice/internal/purchase/domain"
)

// memoryOrders implements PurchaseOrderRepository and PurchaseTxRunner.
type memoryOrders struct {
	orders map[uint]*domain.PurchaseOrder
	nextID uint
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: make(map[uint]*domain.PurchaseOrder), nextID: 1}
}

func clone(order *domain.PurchaseOrder) *domain.PurchaseOrder {
	c := *order
	c.Items = append([]domain.PurchaseOrderItem(nil), order.Items...)
	return &c
}

func (m *memoryOrders) Create(order *domain.PurchaseOrder) error {
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = clone(order)
	return nil
}

func (m *memoryOrders) FindByID(workspaceID, id uint) (*domain.PurchaseOrder, error) {
	order, ok := m.orders[id]
	if !ok || order.WorkspaceID != workspaceID {
		return nil, domain.ErrNotFound
	}
	return clone(order), nil
}

func (m *memoryOrders) FindByIDForUpdate(workspaceID, id uint) (*domain.PurchaseOrder, error) {
	return m.FindByID(workspaceID, id)
}

func (m *memoryOrders) FindByWorkspace(workspaceID uint, limit, offset int) ([]domain.PurchaseOrder, error) {
	var out []domain.PurchaseOrder
	for _, order := range m.orders {
		if order.WorkspaceID == workspaceID {
			out = append(out, *clone(order))
		}
	}
	return out, nil
}

func (m *memoryOrders) Save(order *domain.PurchaseOrder) error {
	m.orders[order.ID] = clone(order)
	return nil
}

func (m *memoryOrders) RunInTx(fn func(domain.PurchaseOrderRepository) error) error {
	return fn(m)
}

// fakeReceiver records ledger bookings.
type fakeReceiver struct {
	bookErr  error
	bookings []booking
}

type booking struct {
	workspaceID     uint
	purchaseOrderID uint
	warehouseID     uint
	lines           []invcommand.ReceiptLine
}

func (f *fakeReceiver) ReceivePurchaseOrder(workspaceID, purchaseOrderID, warehouseID uint, lines []invcommand.ReceiptLine) error {
	f.bookings = append(f.bookings, booking{workspaceID, purchaseOrderID, warehouseID, lines})
	return f.bookErr
}

func seedOrder(t *testing.T, orders *memoryOrders, status string) *domain.PurchaseOrder {
	t.Helper()
	order := &domain.PurchaseOrder{
		WorkspaceID: 1,
		SupplierRef: "ACME-1042",
		WarehouseID: 3,
		Status:      status,
		Items: []domain.PurchaseOrderItem{
			{ProductID: 10, Quantity: 4, UnitCost: 12.5},
			{ProductID: 11, Quantity: 1, UnitCost: 99},
		},
	}
	require.NoError(t, orders.Create(order))
	return order
}

func TestCreatePurchaseOrder(t *testing.T) {
	orders := newMemoryOrders()
	handler := NewCreatePurchaseOrderHandler(orders)

	order, err := handler.Handle(CreatePurchaseOrderCommand{
		WorkspaceID: 1,
		SupplierRef: "ACME-1042",
		WarehouseID: 3,
		Items: []PurchaseLine{
			{ProductID: 10, Quantity: 4, UnitCost: 12.5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, uint(10), order.Items[0].ProductID)
}

func TestCreatePurchaseOrder_Validation(t *testing.T) {
	handler := NewCreatePurchaseOrderHandler(newMemoryOrders())

	_, err := handler.Handle(CreatePurchaseOrderCommand{WorkspaceID: 1})
	assert.ErrorIs(t, err, domain.ErrEmptyItems)

	_, err = handler.Handle(CreatePurchaseOrderCommand{
		WorkspaceID: 1,
		Items:       []PurchaseLine{{ProductID: 10, Quantity: 0}},
	})
	assert.Error(t, err)
}

func TestReceivePurchaseOrder_BooksStock(t *testing.T) {
	orders := newMemoryOrders()
	receiver := &fakeReceiver{}
	order := seedOrder(t, orders, domain.StatusOrdered)

	handler := NewReceivePurchaseOrderHandler(orders, receiver)
	received, err := handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)

	require.Len(t, receiver.bookings, 1)
	b := receiver.bookings[0]
	assert.Equal(t, uint(1), b.workspaceID)
	assert.Equal(t, order.ID, b.purchaseOrderID)
	assert.Equal(t, uint(3), b.warehouseID)
	require.Len(t, b.lines, 2)
	assert.Equal(t, invcommand.ReceiptLine{ProductID: 10, Quantity: 4}, b.lines[0])
	assert.Equal(t, invcommand.ReceiptLine{ProductID: 11, Quantity: 1}, b.lines[1])
}

func TestReceivePurchaseOrder_DraftIsReceivable(t *testing.T) {
	orders := newMemoryOrders()
	receiver := &fakeReceiver{}
	order := seedOrder(t, orders, domain.StatusDraft)

	handler := NewReceivePurchaseOrderHandler(orders, receiver)
	received, err := handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReceived, received.Status)
}

func TestReceivePurchaseOrder_SecondReceiveRejected(t *testing.T) {
	orders := newMemoryOrders()
	receiver := &fakeReceiver{}
	order := seedOrder(t, orders, domain.StatusOrdered)

	handler := NewReceivePurchaseOrderHandler(orders, receiver)
	_, err := handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: order.ID})
	require.NoError(t, err)

	_, err = handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)
	assert.Len(t, receiver.bookings, 1, "duplicate receive must not touch the ledger")
}

func TestReceivePurchaseOrder_CanceledNotReceivable(t *testing.T) {
	orders := newMemoryOrders()
	receiver := &fakeReceiver{}
	order := seedOrder(t, orders, domain.StatusCanceled)

	handler := NewReceivePurchaseOrderHandler(orders, receiver)
	_, err := handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrNotReceivable)
	assert.Empty(t, receiver.bookings)

	stored, err := orders.FindByID(1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, stored.Status)
}

func TestReceivePurchaseOrder_BookingFailurePropagates(t *testing.T) {
	orders := newMemoryOrders()
	receiver := &fakeReceiver{bookErr: errors.New("warehouse not found")}
	order := seedOrder(t, orders, domain.StatusOrdered)

	handler := NewReceivePurchaseOrderHandler(orders, receiver)
	received, err := handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: order.ID})
	require.Error(t, err)
	require.NotNil(t, received, "the order stays received even when booking fails")
	assert.Equal(t, domain.StatusReceived, received.Status)
}

func TestReceivePurchaseOrder_NotFound(t *testing.T) {
	handler := NewReceivePurchaseOrderHandler(newMemoryOrders(), &fakeReceiver{})

	_, err := handler.Handle(ReceivePurchaseOrderCommand{WorkspaceID: 1, PurchaseOrderID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
