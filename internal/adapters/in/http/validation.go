package http

import (
	"errors"
	"net/http"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/ports"
	"deliverus/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Context keys under which the middleware stores validated payloads.
const (
	validatedCreateOrderKey = "validatedCreateOrder"
	validatedUpdateOrderKey = "validatedUpdateOrder"
)

// PayloadValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call ctx.Validate on bound payloads.
type PayloadValidator struct {
	validate *validator.Validate
}

// NewPayloadValidator creates a payload validator with the default tag rules.
func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{validate: validator.New()}
}

// Validate checks the struct against its validate tags.
func (v *PayloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// OrderValidator checks create and update payloads against persistent state
// before the command handlers run: the restaurant must exist, every selected
// product must belong to its catalog, and updates may only touch pending
// orders. The handlers re-check the catalog inside their transaction; the
// middleware exists to reject bad payloads with a precise message before any
// write is attempted.
type OrderValidator struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
}

// NewOrderValidator creates the validation middleware for order payloads.
func NewOrderValidator(orders ports.OrderRepository, restaurants ports.RestaurantRepository) *OrderValidator {
	return &OrderValidator{
		orders:      orders,
		restaurants: restaurants,
	}
}

// ValidateCreate checks an order placement payload. On success the parsed
// payload is stored in the request context for the handler.
func (v *OrderValidator) ValidateCreate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req CreateOrderRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}

		if err := ctx.Validate(&req); err != nil {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Invalid order data: " + err.Error(),
			})
		}

		restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
		if err != nil {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Invalid restaurant id",
			})
		}

		if _, err = v.restaurants.Get(ctx.Request().Context(), restaurantID); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return ctx.JSON(http.StatusUnprocessableEntity, Error{
					Code:    http.StatusUnprocessableEntity,
					Message: "Restaurant not found",
				})
			}
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to validate order",
			})
		}

		if ok, respErr := v.checkProductsBelong(ctx, restaurantID, req.Products); !ok {
			return respErr
		}

		ctx.Set(validatedCreateOrderKey, req)
		return next(ctx)
	}
}

// ValidateUpdate checks an order update payload. The restaurant is immutable,
// so its presence in the payload is rejected outright; products are matched
// against the catalog of the order's stored restaurant.
func (v *OrderValidator) ValidateUpdate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var req UpdateOrderRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
			})
		}

		if req.RestaurantID != nil {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "The restaurant of an order cannot be modified",
			})
		}

		if err := ctx.Validate(&req); err != nil {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Invalid order data: " + err.Error(),
			})
		}

		orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid order id",
			})
		}

		aggregate, err := v.orders.Get(ctx.Request().Context(), orderID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return ctx.JSON(http.StatusNotFound, Error{
					Code:    http.StatusNotFound,
					Message: "Order not found",
				})
			}
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to validate order",
			})
		}

		if aggregate.Status() != order.Pending {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Only pending orders can be edited",
			})
		}

		if ok, respErr := v.checkProductsBelong(ctx, aggregate.RestaurantID(), req.Products); !ok {
			return respErr
		}

		ctx.Set(validatedUpdateOrderKey, req)
		return next(ctx)
	}
}

// checkProductsBelong verifies every selected product exists in the given
// restaurant's catalog. Duplicate selections make the match fall short and
// are rejected along with foreign products. When ok is false the error
// response has already been written and err is its result.
func (v *OrderValidator) checkProductsBelong(
	ctx echo.Context,
	restaurantID kernel.UUID,
	products []ProductSelectionRequest,
) (ok bool, _ error) {
	productIDs := make([]kernel.UUID, 0, len(products))
	for _, selection := range products {
		productID, err := kernel.UUIDFromString(selection.ProductID)
		if err != nil {
			return false, ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Invalid product id",
			})
		}
		productIDs = append(productIDs, productID)
	}

	count, err := v.restaurants.CountProducts(ctx.Request().Context(), restaurantID, productIDs)
	if err != nil {
		return false, ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to validate order",
		})
	}

	if count != int64(len(productIDs)) {
		return false, ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Some products are unavailable or do not belong to the restaurant",
		})
	}

	return true, nil
}
