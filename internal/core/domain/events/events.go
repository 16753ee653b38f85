// Package events defines the lifecycle events the marketplace emits to the
// notification sink. Events are best-effort: publishing never blocks or fails
// the state transition that produced them.
package events

import (
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
)

// Event is a lifecycle fact about an order. Events for the same order are
// published in the order they occurred.
type Event interface {
	// Name returns the event type name used for routing and serialization.
	Name() string
	// OrderID returns the order the event belongs to. Used as the partition
	// key so per-order ordering is preserved.
	OrderID() kernel.UUID
	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
}

type base struct {
	orderID    kernel.UUID
	occurredAt time.Time
}

func newBase(orderID kernel.UUID) base {
	return base{orderID: orderID, occurredAt: time.Now().UTC()}
}

func (b base) OrderID() kernel.UUID  { return b.orderID }
func (b base) OccurredAt() time.Time { return b.occurredAt }

// OrderCreated is emitted when a customer posts a new order.
type OrderCreated struct {
	base
	CustomerID kernel.UUID
	BasePrice  kernel.Money
}

// NewOrderCreated creates an OrderCreated event.
func NewOrderCreated(orderID, customerID kernel.UUID, basePrice kernel.Money) OrderCreated {
	return OrderCreated{base: newBase(orderID), CustomerID: customerID, BasePrice: basePrice}
}

// Name implements Event.
func (OrderCreated) Name() string { return "OrderCreated" }

// BidSubmitted is emitted when a driver submits or updates a bid.
type BidSubmitted struct {
	base
	BidID    kernel.UUID
	DriverID kernel.UUID
	Price    kernel.Money
}

// NewBidSubmitted creates a BidSubmitted event.
func NewBidSubmitted(orderID, bidID, driverID kernel.UUID, price kernel.Money) BidSubmitted {
	return BidSubmitted{base: newBase(orderID), BidID: bidID, DriverID: driverID, Price: price}
}

// Name implements Event.
func (BidSubmitted) Name() string { return "BidSubmitted" }

// BidAccepted is emitted when exactly one bid wins the order and the escrow
// holds are in place.
type BidAccepted struct {
	base
	BidID    kernel.UUID
	DriverID kernel.UUID
	Price    kernel.Money
}

// NewBidAccepted creates a BidAccepted event.
func NewBidAccepted(orderID, bidID, driverID kernel.UUID, price kernel.Money) BidAccepted {
	return BidAccepted{base: newBase(orderID), BidID: bidID, DriverID: driverID, Price: price}
}

// Name implements Event.
func (BidAccepted) Name() string { return "BidAccepted" }

// OrderCancelled is emitted when an order is cancelled by one of the parties.
type OrderCancelled struct {
	base
	Actor order.Actor
}

// NewOrderCancelled creates an OrderCancelled event.
func NewOrderCancelled(orderID kernel.UUID, actor order.Actor) OrderCancelled {
	return OrderCancelled{base: newBase(orderID), Actor: actor}
}

// Name implements Event.
func (OrderCancelled) Name() string { return "OrderCancelled" }

// OrderDelivered is emitted when the cargo reaches its destination and the
// fare capture and fee refund have been requested.
type OrderDelivered struct {
	base
	DriverID kernel.UUID
}

// NewOrderDelivered creates an OrderDelivered event.
func NewOrderDelivered(orderID, driverID kernel.UUID) OrderDelivered {
	return OrderDelivered{base: newBase(orderID), DriverID: driverID}
}

// Name implements Event.
func (OrderDelivered) Name() string { return "OrderDelivered" }
