// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps are managed by the domain, not by GORM's auto-timestamps: the
// revert window is gated on updated_at, so the aggregate must stay the only
// writer of that column.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID  uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Address       string
	Price         float64
	ShippingCosts float64
	Status        int       `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time

	Items []OrderProductDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderProductDTO represents one line item row of the order/product
// association, carrying the quantity and the unit price snapshot.
type OrderProductDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice float64
}

// TableName specifies the database table name for line items.
func (OrderProductDTO) TableName() string {
	return "order_products"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	lineItems := aggregate.LineItems()
	items := make([]OrderProductDTO, 0, len(lineItems))
	for _, item := range lineItems {
		items = append(items, OrderProductDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		UserID:        aggregate.UserID().Bytes(),
		Address:       aggregate.Address(),
		Price:         aggregate.Price(),
		ShippingCosts: aggregate.ShippingCosts(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		StartedAt:     aggregate.StartedAt(),
		SentAt:        aggregate.SentAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder,
// which re-validates the status/timestamp consistency invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(productID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		restaurantID,
		userID,
		dto.Address,
		dto.ShippingCosts,
		items,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.StartedAt,
		dto.SentAt,
		dto.DeliveredAt,
	)
}
