package http

import (
	"time"

	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/order"
)

// Error is the payload of every failure response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusChangeRequest is the body of advance and revert requests. The
// restaurant id must match the order's owning restaurant.
type StatusChangeRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required,uuid"`
}

// ProductSelectionRequest is one product entry of a create or update payload.
type ProductSelectionRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the body of order placement requests.
type CreateOrderRequest struct {
	RestaurantID  string                    `json:"restaurantId" validate:"required,uuid"`
	Address       string                    `json:"address" validate:"required"`
	ShippingCosts float64                   `json:"shippingCosts" validate:"gte=0"`
	Products      []ProductSelectionRequest `json:"products" validate:"required,min=1,dive"`
}

// UpdateOrderRequest is the body of order update requests. The restaurant id
// is immutable, so its presence in the payload is a validation failure; the
// pointer lets the middleware tell "absent" from "present".
type UpdateOrderRequest struct {
	RestaurantID *string                   `json:"restaurantId"`
	Products     []ProductSelectionRequest `json:"products" validate:"required,min=1,dive"`
}

// OrderProductResponse is one line item of an order response.
type OrderProductResponse struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CustomerResponse identifies the customer of a listed order.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse is the representation of a single order returned by the
// create, update, advance, and revert endpoints.
type OrderResponse struct {
	ID            string                 `json:"id"`
	RestaurantID  string                 `json:"restaurantId"`
	UserID        string                 `json:"userId"`
	Status        string                 `json:"status"`
	Price         float64                `json:"price"`
	Address       string                 `json:"address"`
	ShippingCosts float64                `json:"shippingCosts"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	StartedAt     *time.Time             `json:"startedAt"`
	SentAt        *time.Time             `json:"sentAt"`
	DeliveredAt   *time.Time             `json:"deliveredAt"`
	Products      []OrderProductResponse `json:"products"`
}

// ListedOrderResponse is one order of a restaurant listing, extending the
// order representation with the customer.
type ListedOrderResponse struct {
	ID            string                 `json:"id"`
	Status        string                 `json:"status"`
	Price         float64                `json:"price"`
	Address       string                 `json:"address"`
	ShippingCosts float64                `json:"shippingCosts"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	StartedAt     *time.Time             `json:"startedAt"`
	SentAt        *time.Time             `json:"sentAt"`
	DeliveredAt   *time.Time             `json:"deliveredAt"`
	Customer      CustomerResponse       `json:"customer"`
	Products      []OrderProductResponse `json:"products"`
}

// toOrderResponse maps an order aggregate to its HTTP representation.
func toOrderResponse(aggregate *order.Order) OrderResponse {
	lineItems := aggregate.LineItems()
	products := make([]OrderProductResponse, 0, len(lineItems))
	for _, item := range lineItems {
		products = append(products, OrderProductResponse{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderResponse{
		ID:            aggregate.ID().String(),
		RestaurantID:  aggregate.RestaurantID().String(),
		UserID:        aggregate.UserID().String(),
		Status:        aggregate.Status().String(),
		Price:         aggregate.Price(),
		Address:       aggregate.Address(),
		ShippingCosts: aggregate.ShippingCosts(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		StartedAt:     aggregate.StartedAt(),
		SentAt:        aggregate.SentAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		Products:      products,
	}
}

// toListedOrderResponse maps one listing read model to its HTTP representation.
func toListedOrderResponse(item queries.ListRestaurantOrdersQueryResponse) ListedOrderResponse {
	products := make([]OrderProductResponse, 0, len(item.Items))
	for _, line := range item.Items {
		products = append(products, OrderProductResponse{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	return ListedOrderResponse{
		ID:            item.ID.String(),
		Status:        item.Status.String(),
		Price:         item.Price,
		Address:       item.Address,
		ShippingCosts: item.ShippingCosts,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
		StartedAt:     item.StartedAt,
		SentAt:        item.SentAt,
		DeliveredAt:   item.DeliveredAt,
		Customer: CustomerResponse{
			ID:    item.Customer.ID.String(),
			Name:  item.Customer.Name,
			Email: item.Customer.Email,
		},
		Products: products,
	}
}
