package restaurant

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product was not created
	// through the NewProduct constructor.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product is a catalog entry of a restaurant. Orders reference products
// through line items; the product's current price is snapshotted into the
// line item at order time.
type Product struct {
	id    kernel.UUID
	name  string
	price float64

	guard guard.ConstructorGuard
}

// NewProduct creates a catalog product. The price must not be negative.
func NewProduct(id kernel.UUID, name string, price float64) (Product, error) {
	p := Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return Product{}, err
	}

	return p, nil
}

// Validate ensures the product was created through the constructor.
func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p Product) Name() string {
	return p.name
}

// Price returns the product's current catalog price.
func (p Product) Price() float64 {
	return p.price
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%f is negative", price))
	}
	p.price = price
	return nil
}
