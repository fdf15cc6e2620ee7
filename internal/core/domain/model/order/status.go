package order

import (
	"errors"
	"fmt"
	"time"

	"deliverus/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// The lifecycle is strictly linear with no branching or skipping:
//
//	Pending ──> InProcess ──> Sent ──> Delivered
//
// Transitions are defined by fixed forward and backward lookup tables,
// so an illegal transition is a lookup miss rather than a branch case.
// The integer values double as the triage sort order used when listing
// orders for a restaurant.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	// Line items may only be edited while the order is pending.
	Pending

	// InProcess indicates the restaurant has started preparing the order.
	InProcess

	// Sent indicates the order has left the restaurant for delivery.
	Sent

	// Delivered indicates the order reached the customer.
	// This is the final state of the forward lifecycle.
	Delivered
)

var (
	// ErrNoNextStatus is returned when advancing an order that has no
	// further status, i.e. it is already Delivered or in an unrecognized state.
	ErrNoNextStatus = errors.New("order status cannot be advanced")

	// ErrNoPreviousStatus is returned when reverting an order that has no
	// earlier status, i.e. it is still Pending or in an unrecognized state.
	ErrNoPreviousStatus = errors.New("order status cannot be reverted")
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InProcess: "in_process",
		Sent:      "sent",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		InProcess: "in_process",
		Sent:      "sent",
		Delivered: "delivered",
	}
}

// getNextStatuses returns the fixed forward transition table.
// Delivered has no entry: the forward lifecycle ends there.
func getNextStatuses() map[Status]Status {
	return map[Status]Status{
		Pending:   InProcess,
		InProcess: Sent,
		Sent:      Delivered,
	}
}

// getPreviousStatuses returns the fixed backward transition table.
// Pending has no entry: there is nothing earlier to revert to.
func getPreviousStatuses() map[Status]Status {
	return map[Status]Status{
		InProcess: Pending,
		Sent:      InProcess,
		Delivered: Sent,
	}
}

// Validate checks if the Status value is one of the four lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "in_process",
// "sent", "delivered"). Invalid values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Next returns the successor status from the forward transition table.
//
// Returns ErrNoNextStatus if the current status has no successor,
// which is the case for Delivered and for unrecognized values.
func (s Status) Next() (Status, error) {
	next, ok := getNextStatuses()[s]
	if !ok {
		return Unknown, fmt.Errorf("%w: %s has no next status", ErrNoNextStatus, s)
	}
	return next, nil
}

// Previous returns the predecessor status from the backward transition table.
//
// Returns ErrNoPreviousStatus if the current status has no predecessor,
// which is the case for Pending and for unrecognized values.
func (s Status) Previous() (Status, error) {
	previous, ok := getPreviousStatuses()[s]
	if !ok {
		return Unknown, fmt.Errorf("%w: %s has no previous status", ErrNoPreviousStatus, s)
	}
	return previous, nil
}

// StatusFromTimestamps derives the status from the stage timestamps alone:
// deliveredAt set means Delivered, else sentAt set means Sent, else startedAt
// set means InProcess, else Pending.
//
// The stored status enum drives transition logic; this pure derivation exists
// so the two representations can be cross-checked and must never disagree.
func StatusFromTimestamps(startedAt, sentAt, deliveredAt *time.Time) Status {
	switch {
	case deliveredAt != nil:
		return Delivered
	case sentAt != nil:
		return Sent
	case startedAt != nil:
		return InProcess
	default:
		return Pending
	}
}
