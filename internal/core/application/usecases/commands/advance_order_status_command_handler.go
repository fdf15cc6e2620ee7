package commands

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler handles the business logic for moving an
// order forward in its lifecycle. The load-decide-write sequence runs inside
// a single transaction so a concurrent revert cannot interleave with it.
//
// Example:
//
//	handler := NewAdvanceOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewAdvanceOrderStatusCommand(orderID, restaurantID)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("advance failed: %w", err)
//	}
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderStatusCommandHandler creates a handler for advance operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command and returns the updated order.
//
// A missing order or a restaurant mismatch both surface as an
// errs.ObjectNotFoundError, keeping cross-restaurant probing
// indistinguishable from a nonexistent order. An order with no next status
// surfaces as order.ErrNoNextStatus and leaves the row unchanged.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
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

	if !aggregate.RestaurantID().IsEqual(cmd.RestaurantID()) {
		return nil, errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	if err = aggregate.Advance(time.Now()); err != nil {
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
