package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for illegal order status changes.
// Use errors.Is to classify; the concrete error carries the attempted transition.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports an attempted status change that the order
// lifecycle does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a freight order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct marketplace workflow.
//
// State transitions:
//
//	Pending ──> Bidding ──> Accepted ──> Pickup ──> InTransit ──> Delivered
//	   │           │            │           │            │
//	   │           │            └───────────┴────────────┴──> Cancelled
//	   │           └──> Declined (bidding window expired)
//	   └──> Cancelled / Declined (window expired with zero bids)
//
// Delivered, Cancelled and Declined are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// The order is visible to drivers but has not received any bid yet.
	Pending

	// Bidding indicates at least one driver has submitted a bid and the
	// bidding window is open.
	Bidding

	// Accepted indicates exactly one bid has been accepted and the escrow
	// holds for the commitment fee and the fare are in place.
	Accepted

	// Pickup indicates the assigned driver has arrived at the pickup location
	// and is loading the cargo.
	Pickup

	// InTransit indicates the cargo is on its way to the destination.
	InTransit

	// Delivered indicates the cargo reached its destination. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled by one of the parties. Terminal.
	Cancelled

	// Declined indicates the bidding window expired without an accepted bid. Terminal.
	Declined
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Bidding:   "Bidding",
		Accepted:  "Accepted",
		Pickup:    "Pickup",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Declined:  "Declined",
	}
}

// getAllowedTransitions returns the order lifecycle transition table.
// A status missing from the map is terminal. The Pending -> Declined edge
// exists only for the bidding-window sweep: an order whose window expires
// with zero bids is declined without ever entering Bidding.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Bidding, Cancelled, Declined},
		Bidding:   {Accepted, Cancelled, Declined},
		Accepted:  {Pickup, Cancelled},
		Pickup:    {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Declined {
		return &InvalidTransitionError{From: Unknown, To: s}
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Declined:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status counts against the driver capacity
// invariant: a driver holds at most one order in an active status at any instant.
func (s Status) IsActive() bool {
	switch s {
	case Accepted, Pickup, InTransit:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the status to next if the lifecycle allows it.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (0, *InvalidTransitionError) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return 0, &InvalidTransitionError{From: s, To: next}
	}
	return next, nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment: a driver is assigned if and only if the order is in
// Accepted, Pickup, InTransit or Delivered.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	requiresDriver := s.IsActive() || s == Delivered
	if hasDriver && !requiresDriver {
		return &InvalidTransitionError{From: s, To: s}
	}
	if !hasDriver && requiresDriver {
		return &InvalidTransitionError{From: s, To: s}
	}
	return nil
}
