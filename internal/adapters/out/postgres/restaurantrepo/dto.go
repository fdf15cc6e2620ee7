// Package restaurantrepo provides data transfer objects and mapping functions
// for restaurant persistence. Restaurants and their catalogs are managed by a
// separate application; this slice reads them for ownership checks, order
// payload validation, and unit price snapshots.
package restaurantrepo

import (
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurant aggregates.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string

	Products []ProductDTO `gorm:"foreignKey:RestaurantID"`
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO represents one catalog product of a restaurant.
type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string
	Price        float64
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a restaurant aggregate to its database representation.
func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	catalog := aggregate.Products()
	products := make([]ProductDTO, 0, len(catalog))
	for _, p := range catalog {
		products = append(products, ProductDTO{
			ID:           p.ID().Bytes(),
			RestaurantID: aggregate.ID().Bytes(),
			Name:         p.Name(),
			Price:        p.Price(),
		})
	}

	return RestaurantDTO{
		ID:       aggregate.ID().Bytes(),
		OwnerID:  aggregate.OwnerID().Bytes(),
		Name:     aggregate.Name(),
		Products: products,
	}
}

// toDomain converts a database DTO to a restaurant aggregate.
func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	products := make([]restaurant.Product, 0, len(dto.Products))
	for _, productDTO := range dto.Products {
		productID, productErr := kernel.UUIDFromBytes(productDTO.ID[:])
		if productErr != nil {
			return nil, productErr
		}

		product, productErr := restaurant.NewProduct(productID, productDTO.Name, productDTO.Price)
		if productErr != nil {
			return nil, productErr
		}
		products = append(products, product)
	}

	return restaurant.NewRestaurant(id, ownerID, dto.Name, products)
}
