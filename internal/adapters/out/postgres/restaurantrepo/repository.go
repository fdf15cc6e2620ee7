package restaurantrepo

import (
	"context"
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// Add saves a restaurant and its catalog to the database.
// Restaurant management lives in another application; this method exists for
// provisioning and test fixtures.
func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *restaurant.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a restaurant with its product catalog by ID.
func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	err := r.db.WithContext(ctx).Preload("Products").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountProducts returns how many of the given product ids exist in the
// restaurant's catalog. Duplicate or foreign ids in the input make the count
// fall short of the input length, which is what payload validation checks.
func (r *GormRestaurantRepository) CountProducts(
	ctx context.Context,
	restaurantID kernel.UUID,
	productIDs []kernel.UUID,
) (int64, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	if len(productIDs) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return 0, err
		}
		ids = append(ids, id.Bytes())
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("restaurant_id = ? AND id IN ?", restaurantID.Bytes(), ids).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
