package commands

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
// It resolves each selected product against the restaurant's catalog,
// snapshots the current unit price into the line item, and persists the
// pending order in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory spanning order and restaurant repositories.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the create command and returns the created order.
//
// A missing restaurant or a product outside the restaurant's catalog surfaces
// as an errs.ObjectNotFoundError. The validation middleware checks the same
// conditions up front; the handler re-checks them inside the transaction so
// the invariant holds regardless of the boundary.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rest, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	items, err := snapshotLineItems(rest, cmd.Lines())
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.RestaurantID(),
		cmd.UserID(),
		cmd.Address(),
		cmd.ShippingCosts(),
		items,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// snapshotLineItems resolves the selected products against the restaurant's
// catalog and freezes their current prices into line items.
func snapshotLineItems(rest *restaurant.Restaurant, lines []OrderLine) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		product, ok := rest.FindProduct(line.ProductID())
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", line.ProductID().String())
		}

		item, err := order.NewLineItem(line.ProductID(), line.Quantity(), product.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
