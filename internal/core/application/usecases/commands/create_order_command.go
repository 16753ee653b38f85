package commands

import (
	"errors"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrScheduledAtIsRequired = errors.New("scheduled pickup time is required")
)

// CreateOrderCommand represents a customer's request to post a new freight order.
// Encapsulates the route, cargo details, required truck class and asking price.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(
//	    orderID, customerID, pickup, destination,
//	    "20 pallets of bottled water", order.TruckClassMedium,
//	    basePrice, scheduledAt,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	pickup           kernel.Address
	destination      kernel.Address
	cargoDescription string
	truckClass       order.TruckClass
	basePrice        kernel.Money
	scheduledAt      time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to post a new freight order.
// Validates identifiers, addresses, truck class, price and schedule.
// Returns an error joining every failed check.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	pickup, destination kernel.Address,
	cargoDescription string,
	truckClass order.TruckClass,
	basePrice kernel.Money,
	scheduledAt time.Time,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		cargoDescription: cargoDescription,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setPickup(pickup),
		orderCommand.setDestination(destination),
		orderCommand.setTruckClass(truckClass),
		orderCommand.setBasePrice(basePrice),
		orderCommand.setScheduledAt(scheduledAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the posting customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Pickup returns the pickup address.
func (c CreateOrderCommand) Pickup() kernel.Address {
	return c.pickup
}

// Destination returns the destination address.
func (c CreateOrderCommand) Destination() kernel.Address {
	return c.destination
}

// CargoDescription returns the free-form cargo description.
func (c CreateOrderCommand) CargoDescription() string {
	return c.cargoDescription
}

// TruckClass returns the required vehicle category.
func (c CreateOrderCommand) TruckClass() order.TruckClass {
	return c.truckClass
}

// BasePrice returns the customer's asking price.
func (c CreateOrderCommand) BasePrice() kernel.Money {
	return c.basePrice
}

// ScheduledAt returns the requested pickup time.
func (c CreateOrderCommand) ScheduledAt() time.Time {
	return c.scheduledAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup kernel.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.Address) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setTruckClass(truckClass order.TruckClass) error {
	if err := truckClass.Validate(); err != nil {
		return err
	}

	c.truckClass = truckClass
	return nil
}

func (c *CreateOrderCommand) setBasePrice(basePrice kernel.Money) error {
	if err := basePrice.Validate(); err != nil {
		return err
	}

	c.basePrice = basePrice
	return nil
}

func (c *CreateOrderCommand) setScheduledAt(scheduledAt time.Time) error {
	if scheduledAt.IsZero() {
		return ErrScheduledAtIsRequired
	}

	c.scheduledAt = scheduledAt
	return nil
}
