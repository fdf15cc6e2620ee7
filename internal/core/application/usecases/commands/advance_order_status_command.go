package commands

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/guard"
)

var (
	ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
		"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
	)
)

// AdvanceOrderStatusCommand represents a request to move an order one step
// forward in its fulfillment lifecycle. The restaurant id is supplied by the
// caller and must match the order's owning restaurant; a mismatch reads as
// not-found so callers cannot probe other restaurants' orders.
//
// Example:
//
//	cmd, err := NewAdvanceOrderStatusCommand(orderID, restaurantID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAdvanceOrderStatusCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates a command to advance an order's status.
// Validates that both identifiers are valid UUIDs.
func NewAdvanceOrderStatusCommand(orderID, restaurantID kernel.UUID) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
	); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the caller-supplied restaurant identifier.
func (c AdvanceOrderStatusCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStatusCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}
