package order

import (
	"errors"
	"fmt"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
)

// DefaultRevertWindow is the period after an order's last mutation during
// which its status may still be moved backward. It is a business guardrail
// against stale reverts, not a technical constraint, and can be overridden
// through configuration.
const DefaultRevertWindow = 5 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrRevertWindowClosed is returned when a revert is requested after the
	// revert window has elapsed since the order's last mutation.
	ErrRevertWindowClosed = errors.New("revert window has closed")

	// ErrOrderIsNotPending is returned when line items are edited on an order
	// that already entered fulfillment.
	ErrOrderIsNotPending = errors.New("line items can only be changed while the order is pending")
)

// Order represents a customer order placed against one restaurant. It is the
// aggregate root that carries the fulfillment status machine and the
// consistency rules tying the stored status to the stage timestamps.
//
// Order follows these invariants:
//   - The stored status always equals the status derived from the stage
//     timestamps (deliveredAt > sentAt > startedAt > none).
//   - Stage timestamps are acquired monotonically: a later-stage timestamp is
//     never set while an earlier one is unset.
//   - restaurantID and userID are immutable after creation.
//   - Line items are only mutable while the order is pending.
//   - Can only be created through NewOrder or RestoreOrder.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// restaurantID references the restaurant the order was placed against
	restaurantID kernel.UUID

	// userID references the customer who placed the order
	userID kernel.UUID

	// address is the delivery address
	address string

	// shippingCosts is added on top of the line item total
	shippingCosts float64

	// price is the order total: line item subtotals plus shipping costs
	price float64

	// lineItems are the ordered products with quantity and price snapshot
	lineItems []LineItem

	// status is the current state in the fulfillment lifecycle
	status Status

	// createdAt is set once at creation
	createdAt time.Time

	// updatedAt is the last mutation time; it gates revert eligibility
	updatedAt time.Time

	// startedAt, sentAt, deliveredAt mark the forward lifecycle stages
	startedAt   *time.Time
	sentAt      *time.Time
	deliveredAt *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a pending order with no stage timestamps.
// The price is computed from the line item subtotals plus shipping costs.
//
// Parameters:
//   - id, restaurantID, userID: valid UUIDs
//   - address: delivery address, must not be empty
//   - shippingCosts: must not be negative
//   - items: non-empty set of valid line items
//   - now: creation instant, recorded as createdAt and updatedAt
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	userID kernel.UUID,
	address string,
	shippingCosts float64,
	items []LineItem,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setUserID(userID),
		o.setAddress(address),
		o.setShippingCosts(shippingCosts),
		o.setLineItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
// All invariants are re-validated, including the consistency between the
// stored status and the stage timestamps, so corrupted rows are rejected
// instead of flowing into transition logic.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	userID kernel.UUID,
	address string,
	shippingCosts float64,
	items []LineItem,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	startedAt *time.Time,
	sentAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		startedAt:     startedAt,
		sentAt:        sentAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setUserID(userID),
		o.setAddress(address),
		o.setShippingCosts(shippingCosts),
		o.setLineItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := o.validateStatusConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was properly constructed and that the stored
// status still agrees with the stage timestamps.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	if err := o.status.Validate(); err != nil {
		return err
	}
	return o.validateStatusConsistency()
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the identifier of the restaurant the order belongs to.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// UserID returns the identifier of the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// ShippingCosts returns the shipping costs charged on top of the item total.
func (o *Order) ShippingCosts() float64 {
	return o.shippingCosts
}

// Price returns the order total.
func (o *Order) Price() float64 {
	return o.price
}

// LineItems returns a copy of the order's line items.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Status returns the stored fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// DerivedStatus returns the status reconstructed from the stage timestamps.
// It must always equal Status; Validate enforces the invariant.
func (o *Order) DerivedStatus() Status {
	return StatusFromTimestamps(o.startedAt, o.sentAt, o.deliveredAt)
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// StartedAt returns the time the restaurant started preparing the order,
// or nil while the order is pending.
func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

// SentAt returns the time the order left the restaurant, or nil.
func (o *Order) SentAt() *time.Time {
	return o.sentAt
}

// DeliveredAt returns the time the order reached the customer, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Advance moves the order to the next status in the forward transition table
// and stamps the corresponding stage timestamp with now.
//
// Returns ErrNoNextStatus if the order is already Delivered (or in an
// unrecognized state); the order is left untouched in that case.
func (o *Order) Advance(now time.Time) error {
	next, err := o.status.Next()
	if err != nil {
		return err
	}

	switch next { //nolint:exhaustive // only forward targets can come out of Next
	case InProcess:
		o.startedAt = &now
	case Sent:
		o.sentAt = &now
	case Delivered:
		o.deliveredAt = &now
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// CanRevert reports whether the order may still be reverted at the given
// instant: the elapsed time since the last mutation must not exceed window.
// The check is evaluated at the instant of the revert attempt, never cached.
func (o *Order) CanRevert(now time.Time, window time.Duration) bool {
	return now.Sub(o.updatedAt) <= window
}

// Revert moves the order back to the previous status in the backward
// transition table and clears the timestamp of the stage being left:
// reverting into Pending clears startedAt, into InProcess clears sentAt,
// into Sent clears deliveredAt.
//
// Returns ErrRevertWindowClosed if more than window has elapsed since the
// last mutation, or ErrNoPreviousStatus if the order is still Pending.
// The order is left untouched on rejection.
func (o *Order) Revert(now time.Time, window time.Duration) error {
	if !o.CanRevert(now, window) {
		return fmt.Errorf("%w: order was last modified at %s", ErrRevertWindowClosed, o.updatedAt.Format(time.RFC3339))
	}

	previous, err := o.status.Previous()
	if err != nil {
		return err
	}

	switch previous { //nolint:exhaustive // only backward targets can come out of Previous
	case Pending:
		o.startedAt = nil
	case InProcess:
		o.sentAt = nil
	case Sent:
		o.deliveredAt = nil
	}

	o.status = previous
	o.updatedAt = now
	return nil
}

// ReplaceLineItems swaps the order's line items and reprices the order.
//
// Returns ErrOrderIsNotPending if the order already entered fulfillment;
// line items are frozen from the first advance on.
func (o *Order) ReplaceLineItems(items []LineItem, now time.Time) error {
	if o.status != Pending {
		return fmt.Errorf("%w: order is %s", ErrOrderIsNotPending, o.status)
	}

	if err := o.setLineItems(items); err != nil {
		return err
	}

	o.updatedAt = now
	return nil
}

// validateStatusConsistency enforces the timestamp invariants: monotonic
// acquisition of stage timestamps and agreement between the stored status
// and the derived one.
func (o *Order) validateStatusConsistency() error {
	if o.sentAt != nil && o.startedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("sentAt is invalid",
			errors.New("sentAt is set while startedAt is not"))
	}
	if o.deliveredAt != nil && o.sentAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt is invalid",
			errors.New("deliveredAt is set while sentAt is not"))
	}

	if derived := o.DerivedStatus(); derived != o.status {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("stored status %s does not match status %s derived from timestamps", o.status, derived))
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setShippingCosts(shippingCosts float64) error {
	if shippingCosts < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shippingCosts is invalid",
			fmt.Errorf("%f is negative", shippingCosts))
	}
	o.shippingCosts = shippingCosts
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	if err := validateLineItems(items); err != nil {
		return err
	}
	o.lineItems = make([]LineItem, len(items))
	copy(o.lineItems, items)
	o.price = itemsTotal(items) + o.shippingCosts
	return nil
}
