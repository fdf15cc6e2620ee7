package ports

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by their
// owning restaurant.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: status,
	// stage timestamps, updatedAt, price, and the line item set.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByRestaurant retrieves all orders of a restaurant, sorted by
	// status ascending then creation time ascending so that staler,
	// earlier-stage orders surface first within each status bucket.
	GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)
}
