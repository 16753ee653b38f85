package commands

import (
	"errors"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/guard"
)

var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
)

// SubmitBidCommand represents a driver's price proposal for an order.
// Submitting again for the same order replaces the driver's pending proposal
// instead of creating a duplicate.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	bidID    kernel.UUID
	orderID  kernel.UUID
	driverID kernel.UUID
	price    kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a command to submit a bid on an order.
// Validates that all identifiers and the price are valid.
func NewSubmitBidCommand(bidID, orderID, driverID kernel.UUID, price kernel.Money) (SubmitBidCommand, error) {
	bidCommand := SubmitBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bidCommand.setBidID(bidID),
		bidCommand.setOrderID(orderID),
		bidCommand.setDriverID(driverID),
		bidCommand.setPrice(price),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	return bidCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// BidID returns the unique identifier for the bid.
func (c SubmitBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// OrderID returns the identifier of the order being bid on.
func (c SubmitBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the bidding driver.
func (c SubmitBidCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Price returns the proposed price.
func (c SubmitBidCommand) Price() kernel.Money {
	return c.price
}

func (c *SubmitBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *SubmitBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitBidCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *SubmitBidCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.price = price
	return nil
}
