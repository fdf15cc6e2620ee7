// Package http exposes the order management use cases over REST. Requests
// arrive pre-authenticated; the upstream gateway resolves the session and
// forwards the caller's identity in the X-User-Id header.
package http

import (
	"errors"
	"net/http"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the authenticated caller's identity, set by the
// upstream gateway after session validation.
const UserIDHeader = "X-User-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	updateOrderHandler  commands.UpdateOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderStatusCommandHandler
	revertOrderHandler  commands.RevertOrderStatusCommandHandler

	// Query handlers
	listRestaurantOrdersHandler queries.ListRestaurantOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderStatusCommandHandler,
	revertOrderHandler commands.RevertOrderStatusCommandHandler,
	listRestaurantOrdersHandler queries.ListRestaurantOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		updateOrderHandler:          updateOrderHandler,
		advanceOrderHandler:         advanceOrderHandler,
		revertOrderHandler:          revertOrderHandler,
		listRestaurantOrdersHandler: listRestaurantOrdersHandler,
	}
}

// RegisterRoutes wires the server's handlers into the Echo instance. Create
// and update run behind the order validator middleware, which checks payloads
// against the restaurant catalog before the handler sees them.
func (s *Server) RegisterRoutes(e *echo.Echo, validator *OrderValidator) {
	e.GET("/health", s.Health)
	e.GET("/restaurants/:restaurantId/orders", s.GetRestaurantOrders)
	e.POST("/orders", s.CreateOrder, validator.ValidateCreate)
	e.PUT("/orders/:orderId", s.UpdateOrder, validator.ValidateUpdate)
	e.PUT("/orders/:orderId/advance", s.AdvanceOrderStatus)
	e.PUT("/orders/:orderId/revert", s.RevertOrderStatus)
}

// Health handles GET /health - reports service liveness.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetRestaurantOrders handles GET /restaurants/:restaurantId/orders -
// retrieves all orders of a restaurant for its owner.
func (s *Server) GetRestaurantOrders(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid restaurant id",
		})
	}

	userID, err := requestingUser(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid user identity",
		})
	}

	query, err := queries.NewListRestaurantOrdersQuery(restaurantID, userID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid listing request: " + err.Error(),
		})
	}

	orders, err := s.listRestaurantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, queries.ErrRestaurantAccessDenied) {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Access denied",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]ListedOrderResponse, len(orders))
	for i, item := range orders {
		response[i] = toListedOrderResponse(item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /orders - places a new order. The payload has
// already been checked by the validator middleware.
func (s *Server) CreateOrder(ctx echo.Context) error {
	req, ok := ctx.Get(validatedCreateOrderKey).(CreateOrderRequest)
	if !ok {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Order payload was not validated",
		})
	}

	userID, err := requestingUser(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid user identity",
		})
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid restaurant id",
		})
	}

	lines, err := toOrderLines(req.Products)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid product selection: " + err.Error(),
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		restaurantID,
		userID,
		req.Address,
		req.ShippingCosts,
		lines,
	)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Restaurant or product not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// UpdateOrder handles PUT /orders/:orderId - replaces the line items of a
// pending order. The payload has already been checked by the validator
// middleware.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	req, ok := ctx.Get(validatedUpdateOrderKey).(UpdateOrderRequest)
	if !ok {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Order payload was not validated",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	lines, err := toOrderLines(req.Products)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid product selection: " + err.Error(),
		})
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, lines)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, order.ErrOrderIsNotPending):
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Only pending orders can be edited",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to update order",
			})
		}
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// AdvanceOrderStatus handles PUT /orders/:orderId/advance - moves an order
// one step forward in its lifecycle.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, restaurantID, ok, respErr := s.bindStatusChange(ctx)
	if !ok {
		return respErr
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, restaurantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change data: " + err.Error(),
		})
	}

	updated, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, order.ErrNoNextStatus):
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unable to advance order status",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to advance order status",
			})
		}
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// RevertOrderStatus handles PUT /orders/:orderId/revert - moves an order one
// step backward in its lifecycle while the revert window is open.
func (s *Server) RevertOrderStatus(ctx echo.Context) error {
	orderID, restaurantID, ok, respErr := s.bindStatusChange(ctx)
	if !ok {
		return respErr
	}

	cmd, err := commands.NewRevertOrderStatusCommand(orderID, restaurantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change data: " + err.Error(),
		})
	}

	updated, err := s.revertOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, order.ErrRevertWindowClosed), errors.Is(err, order.ErrNoPreviousStatus):
			// The response is deliberately generic; the specific cause stays
			// in the logs for support.
			ctx.Logger().Warnf("revert rejected for order %s: %v", ctx.Param("orderId"), err)
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Cannot revert order status",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to revert order status",
			})
		}
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// bindStatusChange parses the shared shape of advance and revert requests:
// the order id from the path and the restaurant id from the body. When ok is
// false the error response has already been written and err is its result.
func (s *Server) bindStatusChange(ctx echo.Context) (orderID, restaurantID kernel.UUID, ok bool, _ error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, false, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req StatusChangeRequest
	if err = ctx.Bind(&req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, false, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err = ctx.Validate(&req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, false, ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid status change data: " + err.Error(),
		})
	}

	restaurantID, err = kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, false, ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid restaurant id",
		})
	}

	return orderID, restaurantID, true, nil
}

// requestingUser extracts the authenticated caller's identity from the
// gateway-supplied header.
func requestingUser(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(UserIDHeader))
}

// toOrderLines converts payload product selections into command order lines.
func toOrderLines(products []ProductSelectionRequest) ([]commands.OrderLine, error) {
	lines := make([]commands.OrderLine, 0, len(products))
	for _, selection := range products {
		productID, err := kernel.UUIDFromString(selection.ProductID)
		if err != nil {
			return nil, err
		}

		line, err := commands.NewOrderLine(productID, selection.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
