package commands

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/guard"
)

var (
	ErrRevertOrderStatusCommandIsNotConstructed = errors.New(
		"RevertOrderStatusCommand must be created via NewRevertOrderStatusCommand constructor",
	)
)

// RevertOrderStatusCommand represents a request to move an order one step
// backward in its fulfillment lifecycle. Reverts are only honored within the
// configured window after the order's last mutation.
type RevertOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRevertOrderStatusCommand creates a command to revert an order's status.
// Validates that both identifiers are valid UUIDs.
func NewRevertOrderStatusCommand(orderID, restaurantID kernel.UUID) (RevertOrderStatusCommand, error) {
	cmd := RevertOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
	); err != nil {
		return RevertOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RevertOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrRevertOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to revert.
func (c RevertOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the caller-supplied restaurant identifier.
func (c RevertOrderStatusCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c *RevertOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RevertOrderStatusCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}
