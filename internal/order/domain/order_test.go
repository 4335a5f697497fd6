package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"new to pending payment", StatusNew, StatusPendingPayment, true},
		{"new to paid", StatusNew, StatusPaid, true},
		{"new to canceled", StatusNew, StatusCanceled, true},
		{"new to shipped skips stages", StatusNew, StatusShipped, false},
		{"pending to paid", StatusPendingPayment, StatusPaid, true},
		{"pending to preparing skips paid", StatusPendingPayment, StatusPreparing, false},
		{"paid to preparing", StatusPaid, StatusPreparing, true},
		{"paid back to new", StatusPaid, StatusNew, false},
		{"preparing to shipped", StatusPreparing, StatusShipped, true},
		{"shipped to completed", StatusShipped, StatusCompleted, true},
		{"shipped to canceled", StatusShipped, StatusCanceled, true},
		{"completed is terminal", StatusCompleted, StatusCanceled, false},
		{"canceled is terminal", StatusCanceled, StatusNew, false},
		{"same status is a no-op", StatusPaid, StatusPaid, true},
		{"terminal same status is a no-op", StatusCanceled, StatusCanceled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(StatusCompleted))
	assert.True(t, Terminal(StatusCanceled))
	assert.False(t, Terminal(StatusNew))
	assert.False(t, Terminal(StatusShipped))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPreparing))
	assert.False(t, ValidStatus(Status("DELIVERED")))
}

func validOrder() *Order {
	return &Order{
		WorkspaceID:  1,
		BuyerRef:     "buyer-42",
		Status:       StatusNew,
		Subtotal:     200,
		Tax:          18,
		Discount:     20,
		ShippingCost: 12,
		Total:        210,
		Items: []OrderItem{
			{ProductID: 10, Quantity: 2, UnitPrice: 100, Total: 200},
		},
	}
}

func TestOrderValidate(t *testing.T) {
	require.NoError(t, validOrder().Validate())

	t.Run("missing buyer", func(t *testing.T) {
		o := validOrder()
		o.BuyerRef = ""
		assert.ErrorIs(t, o.Validate(), ErrMissingBuyer)
	})

	t.Run("no items", func(t *testing.T) {
		o := validOrder()
		o.Items = nil
		assert.ErrorIs(t, o.Validate(), ErrEmptyItems)
	})

	t.Run("negative money", func(t *testing.T) {
		o := validOrder()
		o.Discount = -1
		assert.ErrorIs(t, o.Validate(), ErrNegativeAmount)
	})

	t.Run("total identity broken", func(t *testing.T) {
		o := validOrder()
		o.Total = 300
		assert.ErrorIs(t, o.Validate(), ErrTotalMismatch)
	})

	t.Run("total identity tolerates float rounding", func(t *testing.T) {
		o := validOrder()
		o.Total = 210.004
		assert.NoError(t, o.Validate())
	})

	t.Run("item without product", func(t *testing.T) {
		o := validOrder()
		o.Items[0].ProductID = 0
		assert.ErrorIs(t, o.Validate(), ErrEmptyItems)
	})
}

func TestLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 50, Discount: 10, Tax: 5}
	assert.InDelta(t, 145.0, item.LineTotal(), 0.001)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "awaiting payment", Label(StatusPendingPayment))
	assert.Equal(t, "SOMETHING", Label(Status("SOMETHING")))
}
