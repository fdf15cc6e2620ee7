package ports

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the read contract for restaurant aggregates.
// Restaurants and their catalogs are managed elsewhere; this slice only
// needs them for ownership checks, referential validation of order payloads,
// and unit price snapshots.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its unique identifier, including its
	// product catalog.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// CountProducts returns how many of the given product ids exist in the
	// restaurant's catalog. Validation compares the count against the payload
	// length: duplicate or foreign ids make the counts diverge, which is a
	// stricter check than set membership.
	CountProducts(ctx context.Context, restaurantID kernel.UUID, productIDs []kernel.UUID) (int64, error)
}
