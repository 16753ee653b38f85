package order

import (
	"fmt"

	"freightline/internal/pkg/errs"
)

// Actor identifies which party performs a lifecycle operation.
// Cancellation compensation depends on the acting party: a driver cancelling
// after acceptance forfeits the commitment fee, a customer does not.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorCustomer is the shipper who posted the order.
	ActorCustomer

	// ActorDriver is the carrier assigned to (or bidding on) the order.
	ActorDriver

	// ActorOperator is marketplace back-office staff.
	ActorOperator
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown:  "Unknown",
		ActorCustomer: "Customer",
		ActorDriver:   "Driver",
		ActorOperator: "Operator",
	}
}

// ActorFromString parses an actor from its string form.
func ActorFromString(s string) (Actor, error) {
	for actor, str := range getActorStrings() {
		if actor != ActorUnknown && str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause("actor",
		fmt.Errorf("%q is not a valid actor", s))
}

// Validate checks if the Actor value is one of the defined parties.
func (a Actor) Validate() error {
	if a < ActorCustomer || a > ActorOperator {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

// String returns the human-readable name of the actor.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "Unknown"
}
