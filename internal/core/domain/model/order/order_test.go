package order_test

import (
	"testing"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLineItems(t *testing.T) []order.LineItem {
	t.Helper()

	first, err := order.NewLineItem(kernel.NewUUID(), 2, 9.50)
	require.NoError(t, err)

	second, err := order.NewLineItem(kernel.NewUUID(), 1, 4.25)
	require.NoError(t, err)

	return []order.LineItem{first, second}
}

func makePendingOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"23 Elm Street",
		3.50,
		makeLineItems(t),
		now,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create pending order with no stage timestamps", func(t *testing.T) {
		o := makePendingOrder(t, now)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.Pending, o.DerivedStatus())
		assert.Nil(t, o.StartedAt())
		assert.Nil(t, o.SentAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("should compute price from line items plus shipping", func(t *testing.T) {
		o := makePendingOrder(t, now)

		// 2*9.50 + 1*4.25 + 3.50 shipping
		assert.InDelta(t, 26.75, o.Price(), 0.001)
		assert.InDelta(t, 3.50, o.ShippingCosts(), 0.001)
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), kernel.NewUUID(),
			"23 Elm Street", 0, makeLineItems(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty address", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", 0, makeLineItems(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "address")
	})

	t.Run("should fail with negative shipping costs", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"23 Elm Street", -1.50, makeLineItems(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "shippingCosts is invalid")
	})

	t.Run("should fail with no line items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"23 Elm Street", 0, nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), kernel.NewUUID(),
			"", -1, nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "address")
		assert.Contains(t, err.Error(), "shippingCosts is invalid")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Advance(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should move pending order to in_process and stamp startedAt", func(t *testing.T) {
		o := makePendingOrder(t, created)
		advancedAt := created.Add(time.Minute)

		err := o.Advance(advancedAt)

		require.NoError(t, err)
		assert.Equal(t, order.InProcess, o.Status())
		require.NotNil(t, o.StartedAt())
		assert.Equal(t, advancedAt, *o.StartedAt())
		assert.Nil(t, o.SentAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, advancedAt, o.UpdatedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should walk the full forward lifecycle", func(t *testing.T) {
		o := makePendingOrder(t, created)

		startedAt := created.Add(1 * time.Minute)
		sentAt := created.Add(2 * time.Minute)
		deliveredAt := created.Add(3 * time.Minute)

		require.NoError(t, o.Advance(startedAt))
		require.NoError(t, o.Advance(sentAt))
		require.NoError(t, o.Advance(deliveredAt))

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Delivered, o.DerivedStatus())
		assert.Equal(t, startedAt, *o.StartedAt())
		assert.Equal(t, sentAt, *o.SentAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should reject advancing a delivered order and leave it untouched", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created.Add(1*time.Minute)))
		require.NoError(t, o.Advance(created.Add(2*time.Minute)))
		lastAdvance := created.Add(3 * time.Minute)
		require.NoError(t, o.Advance(lastAdvance))

		err := o.Advance(created.Add(4 * time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrNoNextStatus)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, lastAdvance, o.UpdatedAt())
		assert.Equal(t, lastAdvance, *o.DeliveredAt())
	})
}

func TestOrder_CanRevert(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should allow revert within the window", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created))

		assert.True(t, o.CanRevert(created.Add(4*time.Minute), order.DefaultRevertWindow))
	})

	t.Run("should allow revert exactly at the window boundary", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created))

		assert.True(t, o.CanRevert(created.Add(order.DefaultRevertWindow), order.DefaultRevertWindow))
	})

	t.Run("should deny revert after the window", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created))

		assert.False(t, o.CanRevert(created.Add(6*time.Minute), order.DefaultRevertWindow))
	})

	t.Run("should honor a configured window", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created))

		window := 30 * time.Minute
		assert.True(t, o.CanRevert(created.Add(20*time.Minute), window))
		assert.False(t, o.CanRevert(created.Add(31*time.Minute), window))
	})
}

func TestOrder_Revert(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should move in_process order back to pending and clear startedAt", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created.Add(1*time.Minute)))

		revertedAt := created.Add(2 * time.Minute)
		err := o.Revert(revertedAt, order.DefaultRevertWindow)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.StartedAt())
		assert.Equal(t, revertedAt, o.UpdatedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should move delivered order back to sent and clear deliveredAt", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created.Add(1*time.Minute)))
		require.NoError(t, o.Advance(created.Add(2*time.Minute)))
		require.NoError(t, o.Advance(created.Add(3*time.Minute)))

		err := o.Revert(created.Add(4*time.Minute), order.DefaultRevertWindow)

		require.NoError(t, err)
		assert.Equal(t, order.Sent, o.Status())
		assert.Nil(t, o.DeliveredAt())
		assert.NotNil(t, o.SentAt())
		assert.NotNil(t, o.StartedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should reject reverting a pending order", func(t *testing.T) {
		o := makePendingOrder(t, created)

		err := o.Revert(created.Add(1*time.Minute), order.DefaultRevertWindow)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrNoPreviousStatus)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, created, o.UpdatedAt())
	})

	t.Run("should reject reverting after the window and leave the order untouched", func(t *testing.T) {
		o := makePendingOrder(t, created)
		advancedAt := created.Add(1 * time.Minute)
		require.NoError(t, o.Advance(advancedAt))

		err := o.Revert(advancedAt.Add(6*time.Minute), order.DefaultRevertWindow)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrRevertWindowClosed)
		assert.Equal(t, order.InProcess, o.Status())
		assert.Equal(t, advancedAt, *o.StartedAt())
		assert.Equal(t, advancedAt, o.UpdatedAt())
	})

	t.Run("should support advance after revert", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created.Add(1*time.Minute)))
		require.NoError(t, o.Revert(created.Add(2*time.Minute), order.DefaultRevertWindow))

		reAdvancedAt := created.Add(3 * time.Minute)
		err := o.Advance(reAdvancedAt)

		require.NoError(t, err)
		assert.Equal(t, order.InProcess, o.Status())
		assert.Equal(t, reAdvancedAt, *o.StartedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should reset the window on every mutation", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created.Add(1*time.Minute)))
		require.NoError(t, o.Advance(created.Add(4*time.Minute)))

		// The first advance is 8 minutes old, but the second mutation
		// reopened the window.
		err := o.Revert(created.Add(8*time.Minute), order.DefaultRevertWindow)

		require.NoError(t, err)
		assert.Equal(t, order.InProcess, o.Status())
	})
}

func TestOrder_ReplaceLineItems(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should replace items and reprice a pending order", func(t *testing.T) {
		o := makePendingOrder(t, created)

		replacement, err := order.NewLineItem(kernel.NewUUID(), 3, 2.00)
		require.NoError(t, err)

		updatedAt := created.Add(1 * time.Minute)
		err = o.ReplaceLineItems([]order.LineItem{replacement}, updatedAt)

		require.NoError(t, err)
		assert.Len(t, o.LineItems(), 1)
		// 3*2.00 + 3.50 shipping
		assert.InDelta(t, 9.50, o.Price(), 0.001)
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should reject edits once the order entered fulfillment", func(t *testing.T) {
		o := makePendingOrder(t, created)
		require.NoError(t, o.Advance(created.Add(1*time.Minute)))
		originalPrice := o.Price()

		replacement, err := order.NewLineItem(kernel.NewUUID(), 1, 1.00)
		require.NoError(t, err)

		err = o.ReplaceLineItems([]order.LineItem{replacement}, created.Add(2*time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrOrderIsNotPending)
		assert.Len(t, o.LineItems(), 2)
		assert.InDelta(t, originalPrice, o.Price(), 0.001)
	})

	t.Run("should reject an empty replacement", func(t *testing.T) {
		o := makePendingOrder(t, created)

		err := o.ReplaceLineItems(nil, created.Add(1*time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(3 * time.Minute)

	restore := func(status order.Status, startedAt, sentAt, deliveredAt *time.Time) (*order.Order, error) {
		return order.RestoreOrder(
			kernel.NewUUID(),
			kernel.NewUUID(),
			kernel.NewUUID(),
			"23 Elm Street",
			3.50,
			makeLineItems(t),
			status,
			created,
			updated,
			startedAt,
			sentAt,
			deliveredAt,
		)
	}

	t.Run("should restore a consistent order", func(t *testing.T) {
		startedAt := created.Add(1 * time.Minute)
		sentAt := created.Add(2 * time.Minute)

		o, err := restore(order.Sent, &startedAt, &sentAt, nil)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Sent, o.Status())
		assert.Equal(t, updated, o.UpdatedAt())
	})

	t.Run("should reject a stored status that disagrees with the timestamps", func(t *testing.T) {
		startedAt := created.Add(1 * time.Minute)

		o, err := restore(order.Sent, &startedAt, nil, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "does not match")
	})

	t.Run("should reject sentAt without startedAt", func(t *testing.T) {
		sentAt := created.Add(2 * time.Minute)

		o, err := restore(order.Sent, nil, &sentAt, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "sentAt is set while startedAt is not")
	})

	t.Run("should reject deliveredAt without sentAt", func(t *testing.T) {
		startedAt := created.Add(1 * time.Minute)
		deliveredAt := created.Add(3 * time.Minute)

		o, err := restore(order.Delivered, &startedAt, nil, &deliveredAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "deliveredAt is set while sentAt is not")
	})

	t.Run("should reject an invalid stored status", func(t *testing.T) {
		o, err := restore(order.Unknown, nil, nil, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "is not a valid status")
	})
}

func TestOrder_IsEqual(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should compare orders by identifier", func(t *testing.T) {
		id := kernel.NewUUID()

		first, err := order.NewOrder(id, kernel.NewUUID(), kernel.NewUUID(),
			"23 Elm Street", 0, makeLineItems(t), created)
		require.NoError(t, err)

		second, err := order.NewOrder(id, kernel.NewUUID(), kernel.NewUUID(),
			"42 Oak Avenue", 5, makeLineItems(t), created)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.False(t, first.IsEqual(makePendingOrder(t, created)))
		assert.False(t, first.IsEqual(nil))
	})
}
