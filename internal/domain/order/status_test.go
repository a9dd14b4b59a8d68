package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("KnownStatuses", func(t *testing.T) {
		for raw, want := range map[string]Status{
			"pending":   StatusPending,
			"approved":  StatusApproved,
			"completed": StatusCompleted,
			"rejected":  StatusRejected,
			"cancelled": StatusCancelled,
		} {
			got, err := ParseStatus(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got)
		}
	})

	t.Run("NormalizesCaseAndSpace", func(t *testing.T) {
		got, err := ParseStatus("  Approved ")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got)
	})

	t.Run("RejectsUnknown", func(t *testing.T) {
		_, err := ParseStatus("refunded")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		_, err := ParseStatus("   ")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestStatusPaid(t *testing.T) {
	assert.True(t, StatusApproved.Paid())
	assert.True(t, StatusCompleted.Paid())
	assert.False(t, StatusPending.Paid())
	assert.False(t, StatusRejected.Paid())
	assert.False(t, StatusCancelled.Paid())
}

func TestStockDecrementDue(t *testing.T) {
	t.Run("FirstPaidTransition", func(t *testing.T) {
		assert.True(t, StockDecrementDue(StatusPending, false, StatusApproved))
		assert.True(t, StockDecrementDue(StatusRejected, false, StatusCompleted))
	})

	t.Run("MarkerBlocksSecondDecrement", func(t *testing.T) {
		assert.False(t, StockDecrementDue(StatusApproved, true, StatusApproved))
		assert.False(t, StockDecrementDue(StatusPending, true, StatusApproved))
	})

	t.Run("PaidToPaidWithoutMarker", func(t *testing.T) {
		// approved -> completed does not decrement again even if the marker is
		// somehow unset.
		assert.False(t, StockDecrementDue(StatusApproved, false, StatusCompleted))
	})

	t.Run("NonPaidTargets", func(t *testing.T) {
		assert.False(t, StockDecrementDue(StatusPending, false, StatusPending))
		assert.False(t, StockDecrementDue(StatusPending, false, StatusRejected))
		assert.False(t, StockDecrementDue(StatusPending, false, StatusCancelled))
	})
}
