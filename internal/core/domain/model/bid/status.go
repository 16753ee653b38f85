package bid

import (
	"errors"
	"fmt"
)

// ErrInvalidStatusChange is the sentinel for illegal bid status changes.
var ErrInvalidStatusChange = errors.New("invalid bid status change")

// InvalidStatusChangeError reports an attempted status change that the bid
// lifecycle does not allow.
type InvalidStatusChangeError struct {
	From Status
	To   Status
}

func (e *InvalidStatusChangeError) Error() string {
	return fmt.Sprintf("invalid bid status change: %s -> %s", e.From, e.To)
}

func (e *InvalidStatusChangeError) Unwrap() error {
	return ErrInvalidStatusChange
}

// Status represents the lifecycle state of a bid.
//
// State transitions:
//
//	Pending ──> Accepted (exactly one per order; siblings are declined)
//	   │  └──> Countered ──> Countered / Declined / Withdrawn
//	   ├──> Declined
//	   └──> Withdrawn
//
// Accepted and Declined additionally revert to Pending on the saga
// compensation path when an escrow hold fails after acceptance.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a submitted bid.
	Pending

	// Accepted indicates this bid won the order. At most one bid per order
	// ever holds this status.
	Accepted

	// Declined indicates the bid lost (a sibling was accepted, the customer
	// declined it, or the bidding window expired).
	Declined

	// Countered indicates the customer answered with a lower price.
	Countered

	// Withdrawn indicates the driver retracted the bid.
	Withdrawn
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Declined:  "Declined",
		Countered: "Countered",
		Withdrawn: "Withdrawn",
	}
}

func getAllowedChanges() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Accepted, Declined, Countered, Withdrawn},
		Countered: {Countered, Declined, Withdrawn},
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Withdrawn {
		return &InvalidStatusChangeError{From: Unknown, To: s}
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

// ChangeTo moves the status to next if the lifecycle allows it.
func (s Status) ChangeTo(next Status) (Status, error) {
	for _, allowed := range getAllowedChanges()[s] {
		if allowed == next {
			return next, nil
		}
	}
	return 0, &InvalidStatusChangeError{From: s, To: next}
}
