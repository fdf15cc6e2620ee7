package order_test

import (
	"testing"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	t.Run("should create valid line item", func(t *testing.T) {
		productID := kernel.NewUUID()

		item, err := order.NewLineItem(productID, 3, 9.95)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, 3, item.Quantity())
		assert.InDelta(t, 9.95, item.UnitPrice(), 0.001)
	})

	t.Run("should fail with invalid product id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewLineItem(invalidID, 1, 1.00)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 0, 1.00)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity is invalid")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), -2, 1.00)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should fail with negative unit price", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 1, -0.01)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unitPrice is invalid")
	})

	t.Run("should accept a free product", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), 1, 0)

		require.NoError(t, err)
		assert.InDelta(t, 0, item.UnitPrice(), 0.001)
	})
}

func TestLineItem_Subtotal(t *testing.T) {
	t.Run("should multiply quantity by unit price", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), 4, 2.50)

		require.NoError(t, err)
		assert.InDelta(t, 10.00, item.Subtotal(), 0.001)
	})
}

func TestLineItem_Validate(t *testing.T) {
	t.Run("should fail validation for zero value line item", func(t *testing.T) {
		var item order.LineItem

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrLineItemIsNotConstructed, err)
	})
}
