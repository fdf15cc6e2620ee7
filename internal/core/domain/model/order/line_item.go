package order

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem was not created
	// through the NewLineItem constructor.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is a value object linking an order to a product with a quantity
// and a unit price snapshot taken at order time. The snapshot keeps the order
// total stable when the catalog price changes later.
type LineItem struct {
	productID kernel.UUID
	quantity  int
	unitPrice float64

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item for the given product.
// Quantity must be positive and the unit price must not be negative.
func NewLineItem(productID kernel.UUID, quantity int, unitPrice float64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the identifier of the ordered product.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the number of units ordered.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the per-unit price snapshotted at order time.
func (li LineItem) UnitPrice() float64 {
	return li.unitPrice
}

// Subtotal returns quantity times unit price.
func (li LineItem) Subtotal() float64 {
	return float64(li.quantity) * li.unitPrice
}

func (li *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid",
			fmt.Errorf("%f is negative", unitPrice))
	}
	li.unitPrice = unitPrice
	return nil
}

// validateLineItems checks that the set is non-empty and every item is valid.
func validateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order must contain at least one line item")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// itemsTotal sums the subtotals of all line items.
func itemsTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
