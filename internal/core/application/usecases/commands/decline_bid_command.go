package commands

import (
	"errors"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/guard"
)

var ErrDeclineBidCommandIsNotConstructed = errors.New(
	"DeclineBidCommand must be created via NewDeclineBidCommand constructor",
)

// DeclineBidCommand represents a customer's rejection of a driver's bid.
type DeclineBidCommand struct { //nolint:recvcheck //using for validation
	bidID      kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclineBidCommand creates a command to decline a bid.
func NewDeclineBidCommand(bidID, customerID kernel.UUID) (DeclineBidCommand, error) {
	declineCommand := DeclineBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		declineCommand.setBidID(bidID),
		declineCommand.setCustomerID(customerID),
	); err != nil {
		return DeclineBidCommand{}, err
	}

	return declineCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineBidCommand) Validate() error {
	return c.guard.Validate(ErrDeclineBidCommandIsNotConstructed)
}

// BidID returns the identifier of the declined bid.
func (c DeclineBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// CustomerID returns the identifier of the declining customer.
func (c DeclineBidCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *DeclineBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *DeclineBidCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
