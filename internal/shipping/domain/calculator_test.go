package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func method(typ string, base float64) *ShippingMethod {
	return &ShippingMethod{ID: 1, WorkspaceID: 1, Name: "test", Type: typ, BasePrice: base, IsActive: true}
}

func TestCalculate_Fixed(t *testing.T) {
	cost, err := Calculate(method(TypeFixed, 45), nil, Destination{}, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, cost, 0.001)
}

func TestCalculate_ByWeight(t *testing.T) {
	items := []CartLine{
		{Quantity: 2, UnitPrice: 10},
		{Quantity: 3, UnitPrice: 5},
	}
	cost, err := Calculate(method(TypeByWeight, 4), items, Destination{}, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cost, 0.001)
}

func TestCalculate_ByCartValue(t *testing.T) {
	m := method(TypeByCartValue, 30)
	m.Settings = `{"free_shipping_threshold": 500}`

	t.Run("below threshold pays base price", func(t *testing.T) {
		items := []CartLine{{Quantity: 2, UnitPrice: 100}}
		cost, err := Calculate(m, items, Destination{}, nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 30.0, cost, 0.001)
	})

	t.Run("at threshold ships free", func(t *testing.T) {
		items := []CartLine{{Quantity: 5, UnitPrice: 100}}
		cost, err := Calculate(m, items, Destination{}, nil, nil)
		require.NoError(t, err)
		assert.Zero(t, cost)
	})

	t.Run("no threshold configured never ships free", func(t *testing.T) {
		plain := method(TypeByCartValue, 30)
		items := []CartLine{{Quantity: 50, UnitPrice: 100}}
		cost, err := Calculate(plain, items, Destination{}, nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 30.0, cost, 0.001)
	})
}

func TestCalculate_ByDistance(t *testing.T) {
	zones := []ShippingZone{
		{ID: 7, WorkspaceID: 1, Name: "north", Provinces: "Gilan, Mazandaran", Cities: "Rasht"},
		{ID: 8, WorkspaceID: 1, Name: "south", Provinces: "Fars", Cities: "Shiraz"},
	}
	rateFor := func(methodID, zoneID uint) float64 {
		if zoneID == 8 {
			return 25
		}
		return 10
	}

	t.Run("province match adds zone rate", func(t *testing.T) {
		cost, err := Calculate(method(TypeByDistance, 40), nil, Destination{Province: "fars"}, zones, rateFor)
		require.NoError(t, err)
		assert.InDelta(t, 65.0, cost, 0.001)
	})

	t.Run("city match adds zone rate", func(t *testing.T) {
		cost, err := Calculate(method(TypeByDistance, 40), nil, Destination{City: "Rasht"}, zones, rateFor)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, cost, 0.001)
	})

	t.Run("no destination falls back to base price", func(t *testing.T) {
		cost, err := Calculate(method(TypeByDistance, 40), nil, Destination{}, zones, rateFor)
		require.NoError(t, err)
		assert.InDelta(t, 40.0, cost, 0.001)
	})

	t.Run("unmatched destination falls back to base price", func(t *testing.T) {
		cost, err := Calculate(method(TypeByDistance, 40), nil, Destination{Province: "Tehran"}, zones, rateFor)
		require.NoError(t, err)
		assert.InDelta(t, 40.0, cost, 0.001)
	})
}

func TestCalculate_Errors(t *testing.T) {
	_, err := Calculate(nil, nil, Destination{}, nil, nil)
	assert.ErrorIs(t, err, ErrMethodNotFound)

	inactive := method(TypeFixed, 10)
	inactive.IsActive = false
	_, err = Calculate(inactive, nil, Destination{}, nil, nil)
	assert.ErrorIs(t, err, ErrMethodInactive)

	_, err = Calculate(method("CARRIER_PIGEON", 10), nil, Destination{}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}
