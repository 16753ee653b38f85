package commands

import (
	"errors"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
	ErrStageIsInvalid = errors.New("stage must be Pickup, InTransit or Delivered")
)

// AdvanceOrderCommand represents the assigned driver reporting progress:
// arrival at the pickup point, departure with the cargo, or delivery.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	stage    order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order's lifecycle.
// stage must be one of Pickup, InTransit or Delivered; the domain transition
// table decides whether the move is legal for the order's current status.
func NewAdvanceOrderCommand(orderID, driverID kernel.UUID, stage order.Status) (AdvanceOrderCommand, error) {
	advanceCommand := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setOrderID(orderID),
		advanceCommand.setDriverID(driverID),
		advanceCommand.setStage(stage),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the advancing order.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the reporting driver.
func (c AdvanceOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Stage returns the lifecycle stage the order should move to.
func (c AdvanceOrderCommand) Stage() order.Status {
	return c.stage
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *AdvanceOrderCommand) setStage(stage order.Status) error {
	switch stage {
	case order.Pickup, order.InTransit, order.Delivered:
		c.stage = stage
		return nil
	default:
		return ErrStageIsInvalid
	}
}
