package commands

import (
	"errors"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand represents a customer's decision to accept a driver's bid.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	bidID      kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a command to accept a bid on behalf of the
// given customer. The customer must own the order the bid is for.
func NewAcceptBidCommand(bidID, customerID kernel.UUID) (AcceptBidCommand, error) {
	acceptCommand := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setBidID(bidID),
		acceptCommand.setCustomerID(customerID),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// BidID returns the identifier of the accepted bid.
func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// CustomerID returns the identifier of the accepting customer.
func (c AcceptBidCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *AcceptBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *AcceptBidCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
