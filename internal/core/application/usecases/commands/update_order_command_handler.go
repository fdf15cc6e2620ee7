package commands

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler handles the business logic for replacing the line
// items of a pending order. New unit prices are snapshotted from the order's
// own restaurant and the order is repriced, all in one transaction.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
// Requires a UoWFactory spanning order and restaurant repositories.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update command and returns the updated order.
//
// A missing order surfaces as an errs.ObjectNotFoundError, an order that
// already entered fulfillment as order.ErrOrderIsNotPending, and a product
// outside the order's restaurant as an errs.ObjectNotFoundError.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	rest, err := uow.RestaurantRepository().Get(ctx, aggregate.RestaurantID())
	if err != nil {
		return nil, err
	}

	items, err := snapshotLineItems(rest, cmd.Lines())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ReplaceLineItems(items, time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
