package commands

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new order against a
// restaurant. The order starts pending with no stage timestamps; its price is
// computed from catalog prices at handling time, not taken from the caller.
//
// Example:
//
//	line, _ := NewOrderLine(productID, 2)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), restaurantID, userID,
//	    "23 Elm Street", 3.50, []OrderLine{line})
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	restaurantID  kernel.UUID
	userID        kernel.UUID
	address       string
	shippingCosts float64
	lines         []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates all identifiers, requires a delivery address and a non-empty
// product selection, and rejects negative shipping costs.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	userID kernel.UUID,
	address string,
	shippingCosts float64,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setUserID(userID),
		cmd.setAddress(address),
		cmd.setShippingCosts(shippingCosts),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the restaurant the order is placed against.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// UserID returns the customer placing the order.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// ShippingCosts returns the shipping costs to charge on top of the item total.
func (c CreateOrderCommand) ShippingCosts() float64 {
	return c.shippingCosts
}

// Lines returns the product selections of the order.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setShippingCosts(shippingCosts float64) error {
	if shippingCosts < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shippingCosts is invalid",
			fmt.Errorf("%f is negative", shippingCosts))
	}
	c.shippingCosts = shippingCosts
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if err := validateOrderLines(lines); err != nil {
		return err
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
