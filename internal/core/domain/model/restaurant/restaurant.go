package restaurant

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
)

var (
	// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
	// not created through the NewRestaurant factory method.
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")
)

// Restaurant is the aggregate the ownership check and the product
// referential checks run against. An order always belongs to exactly one
// restaurant, and only the restaurant's owning user may manage its orders.
type Restaurant struct {
	// id is the unique identifier for the restaurant
	id kernel.UUID

	// ownerID is the user that owns the restaurant
	ownerID kernel.UUID

	// name is the display name of the restaurant
	name string

	// products is the restaurant's catalog, used for line item validation
	// and unit price snapshots
	products []Product

	// isConstructed ensures the restaurant was created via NewRestaurant
	isConstructed bool
}

// NewRestaurant creates a restaurant with its product catalog.
// The product list may be empty; orders against such a restaurant will fail
// line item validation instead.
func NewRestaurant(id kernel.UUID, ownerID kernel.UUID, name string, products []Product) (*Restaurant, error) {
	r := &Restaurant{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setName(name),
		r.setProducts(products),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Restaurant instance was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// OwnerID returns the identifier of the owning user.
func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string {
	return r.name
}

// Products returns a copy of the restaurant's product catalog.
func (r *Restaurant) Products() []Product {
	products := make([]Product, len(r.products))
	copy(products, r.products)
	return products
}

// IsOwnedBy reports whether the given user owns the restaurant.
func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// FindProduct looks up a catalog product by id.
func (r *Restaurant) FindProduct(productID kernel.UUID) (Product, bool) {
	for _, p := range r.products {
		if p.ID().IsEqual(productID) {
			return p, true
		}
	}
	return Product{}, false
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	r.ownerID = ownerID
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setProducts(products []Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	r.products = make([]Product, len(products))
	copy(r.products, products)
	return nil
}
