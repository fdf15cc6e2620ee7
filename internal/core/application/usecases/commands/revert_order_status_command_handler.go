package commands

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
)

// RevertOrderStatusCommandHandler handles the business logic for moving an
// order backward in its lifecycle. The revert window is evaluated against the
// stored updatedAt at the instant of the attempt; the whole load-decide-write
// sequence runs inside a single transaction.
type RevertOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	revertWindow time.Duration
}

// NewRevertOrderStatusCommandHandler creates a handler for revert operations.
// A non-positive revertWindow falls back to order.DefaultRevertWindow.
func NewRevertOrderStatusCommandHandler(uowFactory OrderUoWFactory, revertWindow time.Duration) RevertOrderStatusCommandHandler {
	if revertWindow <= 0 {
		revertWindow = order.DefaultRevertWindow
	}
	return RevertOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		revertWindow: revertWindow,
	}
}

// Handle processes the revert command and returns the updated order.
//
// A missing order or a restaurant mismatch surface as an
// errs.ObjectNotFoundError. An expired window surfaces as
// order.ErrRevertWindowClosed and a pending order as
// order.ErrNoPreviousStatus; the HTTP layer collapses both into one generic
// client error but logs the specific cause.
func (h *RevertOrderStatusCommandHandler) Handle(ctx context.Context, cmd RevertOrderStatusCommand) (*order.Order, error) {
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

	if err = aggregate.Revert(time.Now(), h.revertWindow); err != nil {
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
