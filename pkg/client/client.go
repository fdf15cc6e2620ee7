// Package client provides a typed HTTP client for the order management API.
// It is what the owner-facing frontend and sibling services use to list a
// restaurant's orders and to move them through the fulfillment lifecycle.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// UserIDHeader carries the caller's identity on every request.
const UserIDHeader = "X-User-Id"

// APIError is a non-2xx response decoded from the service's error payload.
type APIError struct {
	StatusCode int
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// OrderProduct is one line item of an order.
type OrderProduct struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Customer identifies the customer of a listed order.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is the service's representation of a single order.
type Order struct {
	ID            string         `json:"id"`
	RestaurantID  string         `json:"restaurantId"`
	UserID        string         `json:"userId"`
	Status        string         `json:"status"`
	Price         float64        `json:"price"`
	Address       string         `json:"address"`
	ShippingCosts float64        `json:"shippingCosts"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	StartedAt     *time.Time     `json:"startedAt"`
	SentAt        *time.Time     `json:"sentAt"`
	DeliveredAt   *time.Time     `json:"deliveredAt"`
	Products      []OrderProduct `json:"products"`
}

// ListedOrder is one order of a restaurant listing.
type ListedOrder struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Price         float64        `json:"price"`
	Address       string         `json:"address"`
	ShippingCosts float64        `json:"shippingCosts"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	StartedAt     *time.Time     `json:"startedAt"`
	SentAt        *time.Time     `json:"sentAt"`
	DeliveredAt   *time.Time     `json:"deliveredAt"`
	Customer      Customer       `json:"customer"`
	Products      []OrderProduct `json:"products"`
}

// ProductSelection is one product entry of a create or update payload.
type ProductSelection struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	RestaurantID  string             `json:"restaurantId"`
	Address       string             `json:"address"`
	ShippingCosts float64            `json:"shippingCosts"`
	Products      []ProductSelection `json:"products"`
}

// UpdateOrderRequest is the payload for replacing a pending order's products.
type UpdateOrderRequest struct {
	Products []ProductSelection `json:"products"`
}

type statusChangeRequest struct {
	RestaurantID string `json:"restaurantId"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserID sets the caller identity attached to every request.
func WithUserID(userID string) Option {
	return func(c *Client) {
		c.userID = userID
	}
}

// Client calls the order management API.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRestaurantOrders lists all orders of a restaurant. The caller must be
// the restaurant's owner.
func (c *Client) GetRestaurantOrders(ctx context.Context, restaurantID string) ([]ListedOrder, error) {
	var orders []ListedOrder
	path := fmt.Sprintf("/restaurants/%s/orders", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places a new order on behalf of the caller.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var created Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateOrder replaces the products of a pending order.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, req UpdateOrderRequest) (*Order, error) {
	var updated Order
	path := fmt.Sprintf("/orders/%s", orderID)
	if err := c.do(ctx, http.MethodPut, path, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AdvanceOrderStatus moves an order one step forward in its lifecycle.
func (c *Client) AdvanceOrderStatus(ctx context.Context, orderID, restaurantID string) (*Order, error) {
	var updated Order
	path := fmt.Sprintf("/orders/%s/advance", orderID)
	if err := c.do(ctx, http.MethodPut, path, statusChangeRequest{RestaurantID: restaurantID}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RevertOrderStatus moves an order one step backward in its lifecycle. The
// service rejects the call once the revert window has closed.
func (c *Client) RevertOrderStatus(ctx context.Context, orderID, restaurantID string) (*Order, error) {
	var updated Order
	path := fmt.Sprintf("/orders/%s/revert", orderID)
	if err := c.do(ctx, http.MethodPut, path, statusChangeRequest{RestaurantID: restaurantID}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewBuffer(encoded)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(UserIDHeader, c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
