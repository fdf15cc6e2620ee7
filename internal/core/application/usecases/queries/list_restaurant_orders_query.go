package queries

import (
	"errors"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/guard"
)

var (
	ErrListRestaurantOrdersQueryIsNotConstructed = errors.New(
		"ListRestaurantOrdersQuery must be created via NewListRestaurantOrdersQuery constructor",
	)

	// ErrRestaurantAccessDenied is returned when the restaurant does not exist
	// or is not owned by the requesting user. Both cases read the same so
	// callers cannot distinguish foreign restaurants from missing ones.
	ErrRestaurantAccessDenied = errors.New("restaurant is not owned by the requesting user")
)

// ListRestaurantOrdersQuery retrieves all orders of a restaurant for its
// owner, each with the customer and line items attached. Results are sorted
// by status ascending then creation time ascending, so staler, earlier-stage
// orders surface first within each status bucket — the ordering kitchen and
// dispatch staff triage by.
//
// Example:
//
//	query, err := NewListRestaurantOrdersQuery(restaurantID, requestingUserID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewListRestaurantOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type ListRestaurantOrdersQuery struct { //nolint:recvcheck //using for validation
	restaurantID     kernel.UUID
	requestingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListRestaurantOrdersQuery creates a query for a restaurant's orders on
// behalf of the given requesting user.
func NewListRestaurantOrdersQuery(restaurantID, requestingUserID kernel.UUID) (ListRestaurantOrdersQuery, error) {
	query := ListRestaurantOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setRestaurantID(restaurantID),
		query.setRequestingUserID(requestingUserID),
	); err != nil {
		return ListRestaurantOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantOrdersQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose orders are requested.
func (q ListRestaurantOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// RequestingUserID returns the user asking for the listing.
func (q ListRestaurantOrdersQuery) RequestingUserID() kernel.UUID {
	return q.requestingUserID
}

func (q *ListRestaurantOrdersQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	q.restaurantID = restaurantID
	return nil
}

func (q *ListRestaurantOrdersQuery) setRequestingUserID(requestingUserID kernel.UUID) error {
	if err := requestingUserID.Validate(); err != nil {
		return err
	}
	q.requestingUserID = requestingUserID
	return nil
}

// ListRestaurantOrdersQueryResponse is one order of the listing, shaped for
// the owner-facing UI: the stored status plus the customer and line items.
type ListRestaurantOrdersQueryResponse struct {
	ID            kernel.UUID
	Status        order.Status
	Price         float64
	Address       string
	ShippingCosts float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time
	Customer      CustomerResponse
	Items         []OrderItemResponse
}

// CustomerResponse identifies the customer that placed an order.
type CustomerResponse struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// OrderItemResponse is one line item of a listed order.
type OrderItemResponse struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
}
