package commands_test

import (
	"testing"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		line, err := commands.NewOrderLine(kernel.NewUUID(), 2)
		require.NoError(t, err)

		cmd, err := commands.NewUpdateOrderCommand(orderID, []commands.OrderLine{line})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Len(t, cmd.Lines(), 1)
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID
		line, err := commands.NewOrderLine(kernel.NewUUID(), 1)
		require.NoError(t, err)

		_, err = commands.NewUpdateOrderCommand(invalidID, []commands.OrderLine{line})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with no product selections", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.UpdateOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrUpdateOrderCommandIsNotConstructed, err)
	})
}
