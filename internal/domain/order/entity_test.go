package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validItems() []Item {
	return []Item{
		{ProductID: "p1", Name: "Shirt", Quantity: 2, UnitPrice: 49.9},
		{ProductID: "p2", Name: "Mug", Quantity: 1, UnitPrice: 19.5},
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		o, err := New("", validItems(), "buyer@example.com", testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.False(t, o.StockAdjusted)
		assert.Equal(t, testNow, o.CreatedAt)
		assert.Len(t, o.Items, 2)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		_, err := New("", nil, "buyer@example.com", testNow)
		assert.ErrorIs(t, err, ErrInvalidItems)
	})

	t.Run("BadEmail", func(t *testing.T) {
		_, err := New("", validItems(), "not-an-email", testNow)
		assert.ErrorIs(t, err, ErrInvalidPayerEmail)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		items := []Item{{ProductID: "p1", Name: "Shirt", Quantity: 0, UnitPrice: 10}}
		_, err := New("", items, "buyer@example.com", testNow)
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("MissingProductID", func(t *testing.T) {
		items := []Item{{ProductID: "  ", Name: "Shirt", Quantity: 1, UnitPrice: 10}}
		_, err := New("", items, "buyer@example.com", testNow)
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		items := []Item{{ProductID: "p1", Name: "Shirt", Quantity: 1, UnitPrice: -1}}
		_, err := New("", items, "buyer@example.com", testNow)
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("BlankNameGetsPlaceholder", func(t *testing.T) {
		items := []Item{{ProductID: "p1", Name: "  ", Quantity: 1, UnitPrice: 10}}
		o, err := New("", items, "buyer@example.com", testNow)
		require.NoError(t, err)
		assert.Equal(t, "unnamed product", o.Items[0].Name)
	})
}

func TestOrderTotal(t *testing.T) {
	o, err := New("", validItems(), "buyer@example.com", testNow)
	require.NoError(t, err)
	assert.InDelta(t, 2*49.9+19.5, o.Total(), 1e-9)
}
