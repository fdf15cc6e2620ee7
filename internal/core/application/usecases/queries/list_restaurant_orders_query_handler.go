package queries

import (
	"context"
	"errors"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRestaurantOrdersQueryHandler reads a restaurant's orders straight from
// the database for the owner-facing listing. The ownership gate runs first;
// a restaurant that is missing or owned by someone else yields
// ErrRestaurantAccessDenied before any order row is read.
type ListRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListRestaurantOrdersQueryHandler creates a handler for restaurant order
// listings. Requires a GORM database connection for query execution.
func NewListRestaurantOrdersQueryHandler(db *gorm.DB) ListRestaurantOrdersQueryHandler {
	return ListRestaurantOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
// Orders come back sorted by status ascending then creation time ascending,
// each with its customer and line items attached.
func (h ListRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListRestaurantOrdersQuery,
) ([]ListRestaurantOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.checkOwnership(ctx, query); err != nil {
		return nil, err
	}

	orders, err := h.fetchOrders(ctx, query.RestaurantID())
	if err != nil {
		return nil, err
	}

	if err = h.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h ListRestaurantOrdersQueryHandler) checkOwnership(ctx context.Context, query ListRestaurantOrdersQuery) error {
	var ownerID uuid.UUID

	err := h.db.WithContext(ctx).Raw(`
		SELECT owner_id
		FROM restaurants
		WHERE id = ?
	`, query.RestaurantID().Bytes()).Scan(&ownerID).Error
	if err != nil {
		return err
	}

	if ownerID != query.RequestingUserID().Bytes() {
		return ErrRestaurantAccessDenied
	}

	return nil
}

func (h ListRestaurantOrdersQueryHandler) fetchOrders(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]ListRestaurantOrdersQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.price,
			o.address,
			o.shipping_costs,
			o.created_at,
			o.updated_at,
			o.started_at,
			o.sent_at,
			o.delivered_at,
			u.id,
			u.name,
			u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.restaurant_id = ?
		ORDER BY o.status ASC, o.created_at ASC
	`, restaurantID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListRestaurantOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			orderID    uuid.UUID
			status     int
			price      float64
			address    string
			shipping   float64
			createdAt  time.Time
			updatedAt  time.Time
			startedAt  *time.Time
			sentAt     *time.Time
			delivered  *time.Time
			customerID uuid.UUID
			name       string
			email      string
		)

		err = rows.Scan(
			&orderID, &status, &price, &address, &shipping,
			&createdAt, &updatedAt, &startedAt, &sentAt, &delivered,
			&customerID, &name, &email,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		custID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, ListRestaurantOrdersQueryResponse{
			ID:            id,
			Status:        order.Status(status),
			Price:         price,
			Address:       address,
			ShippingCosts: shipping,
			CreatedAt:     createdAt,
			UpdatedAt:     updatedAt,
			StartedAt:     startedAt,
			SentAt:        sentAt,
			DeliveredAt:   delivered,
			Customer: CustomerResponse{
				ID:    custID,
				Name:  name,
				Email: email,
			},
			Items: make([]OrderItemResponse, 0),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h ListRestaurantOrdersQueryHandler) attachItems(ctx context.Context, orders []ListRestaurantOrdersQueryResponse) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID.Bytes()
		index[o.ID.Bytes()] = i
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			op.order_id,
			op.product_id,
			p.name,
			op.quantity,
			op.unit_price
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id IN ?
	`, orderIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID     uuid.UUID
			productID   uuid.UUID
			productName string
			quantity    int
			unitPrice   float64
		)

		if err = rows.Scan(&orderID, &productID, &productName, &quantity, &unitPrice); err != nil {
			return err
		}

		i, ok := index[orderID]
		if !ok {
			return errors.New("line item references an order outside the listing")
		}

		prodID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return idErr
		}

		orders[i].Items = append(orders[i].Items, OrderItemResponse{
			ProductID:   prodID,
			ProductName: productName,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
	}

	return rows.Err()
}
