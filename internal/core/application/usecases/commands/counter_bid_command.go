package commands

import (
	"errors"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/guard"
)

var ErrCounterBidCommandIsNotConstructed = errors.New(
	"CounterBidCommand must be created via NewCounterBidCommand constructor",
)

// CounterBidCommand represents a customer's counter-offer on a driver's bid.
// The counter price must undercut the order's current asking price.
type CounterBidCommand struct { //nolint:recvcheck //using for validation
	bidID      kernel.UUID
	customerID kernel.UUID
	newPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewCounterBidCommand creates a command to counter a bid with a new price.
func NewCounterBidCommand(bidID, customerID kernel.UUID, newPrice kernel.Money) (CounterBidCommand, error) {
	counterCommand := CounterBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		counterCommand.setBidID(bidID),
		counterCommand.setCustomerID(customerID),
		counterCommand.setNewPrice(newPrice),
	); err != nil {
		return CounterBidCommand{}, err
	}

	return counterCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CounterBidCommand) Validate() error {
	return c.guard.Validate(ErrCounterBidCommandIsNotConstructed)
}

// BidID returns the identifier of the countered bid.
func (c CounterBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// CustomerID returns the identifier of the countering customer.
func (c CounterBidCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// NewPrice returns the proposed counter price.
func (c CounterBidCommand) NewPrice() kernel.Money {
	return c.newPrice
}

func (c *CounterBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *CounterBidCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CounterBidCommand) setNewPrice(newPrice kernel.Money) error {
	if err := newPrice.Validate(); err != nil {
		return err
	}

	c.newPrice = newPrice
	return nil
}
