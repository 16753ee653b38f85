package bid

import (
	"errors"
	"fmt"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid instance was not created through
	// the NewBid factory method. This ensures all bids are properly validated.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")

	// ErrPriceIsNotPositive is returned when a proposed price is zero or negative.
	ErrPriceIsNotPositive = errors.New("proposed price must be greater than 0")

	// ErrCounterRoundsExceeded is returned when the negotiation exceeds
	// MaxCounterRounds counter-offers.
	ErrCounterRoundsExceeded = errors.New("maximum counter-offer rounds exceeded")
)

// MaxCounterRounds bounds the counter-offer negotiation per bid.
const MaxCounterRounds = 5

// Bid represents a driver's price proposal for an order. It is an aggregate
// root owning the bid negotiation lifecycle.
//
// Bid follows these invariants:
//   - Must have valid bid, order and driver identifiers
//   - The proposed price must be strictly positive
//   - At most one pending bid exists per (order, driver); submitting again
//     replaces the proposal instead of duplicating it
//   - At most one bid per order ever reaches Accepted
//   - Counter-offers must lie strictly between zero and the current asking
//     price, for at most MaxCounterRounds rounds
type Bid struct {
	id            kernel.UUID
	orderID       kernel.UUID
	driverID      kernel.UUID
	price         kernel.Money
	status        Status
	counterRounds int
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewBid creates a new pending Bid with validation.
func NewBid(id, orderID, driverID kernel.UUID, price kernel.Money) (*Bid, error) {
	now := time.Now().UTC()
	b := &Bid{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setDriverID(driverID),
		b.setPrice(price),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBid reconstructs a Bid from persistence.
func RestoreBid(
	id, orderID, driverID kernel.UUID,
	price kernel.Money,
	status Status,
	counterRounds int,
	createdAt, updatedAt time.Time,
) (*Bid, error) {
	b := &Bid{
		counterRounds: counterRounds,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setDriverID(driverID),
		b.setPrice(price),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	b.status = status

	if counterRounds < 0 || counterRounds > MaxCounterRounds {
		return nil, errs.NewValueIsOutOfRangeError("counter rounds", counterRounds, 0, MaxCounterRounds)
	}

	return b, nil
}

// Validate ensures the Bid instance was properly constructed through a constructor.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// IsEqual compares two bids by their unique identifiers.
func (b *Bid) IsEqual(other *Bid) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// OrderID returns the identifier of the order this bid is for.
func (b *Bid) OrderID() kernel.UUID {
	return b.orderID
}

// DriverID returns the identifier of the bidding driver.
func (b *Bid) DriverID() kernel.UUID {
	return b.driverID
}

// Price returns the current proposed price.
func (b *Bid) Price() kernel.Money {
	return b.price
}

// Status returns the current status of the bid.
func (b *Bid) Status() Status {
	return b.status
}

// CounterRounds returns how many counter-offers have been exchanged.
func (b *Bid) CounterRounds() int {
	return b.counterRounds
}

// CreatedAt returns when the bid was first submitted.
func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt returns when the bid last changed.
func (b *Bid) UpdatedAt() time.Time {
	return b.updatedAt
}

// Accept marks the bid as the winner. Only pending bids can be accepted;
// declining all sibling bids and assigning the order happen in the same
// transaction at the application layer.
func (b *Bid) Accept() error {
	return b.change(Accepted)
}

// Decline marks the bid as lost or rejected.
func (b *Bid) Decline() error {
	return b.change(Declined)
}

// Withdraw retracts the bid on behalf of the driver.
func (b *Bid) Withdraw() error {
	return b.change(Withdrawn)
}

// Counter records the customer's counter-offer. The new price must lie
// strictly between zero and the order's current asking price, and the
// negotiation is bounded by MaxCounterRounds.
func (b *Bid) Counter(newPrice, askingPrice kernel.Money) error {
	if err := errors.Join(newPrice.Validate(), askingPrice.Validate()); err != nil {
		return err
	}
	if !newPrice.IsPositive() {
		return ErrPriceIsNotPositive
	}

	belowAsking, err := newPrice.LessThan(askingPrice)
	if err != nil {
		return err
	}
	if !belowAsking {
		return errs.NewValueIsOutOfRangeError(
			"counter price", newPrice.Amount(), 1, askingPrice.Amount()-1)
	}
	if b.counterRounds >= MaxCounterRounds {
		return ErrCounterRoundsExceeded
	}

	if err = b.change(Countered); err != nil {
		return err
	}
	b.price = newPrice
	b.counterRounds++
	return nil
}

// Reinstate reverts an accepted or declined bid back to Pending.
// This is the saga compensation path when an escrow hold fails after
// acceptance: the winner and its declined siblings all return to Pending.
func (b *Bid) Reinstate() error {
	if b.status != Accepted && b.status != Declined {
		return &InvalidStatusChangeError{From: b.status, To: Pending}
	}
	b.status = Pending
	b.touch()
	return nil
}

// UpdateProposal replaces the proposed price of a pending bid. Used when a
// driver submits again for the same order instead of creating a duplicate.
func (b *Bid) UpdateProposal(price kernel.Money) error {
	if b.status != Pending {
		return &InvalidStatusChangeError{From: b.status, To: Pending}
	}
	if err := b.setPrice(price); err != nil {
		return err
	}
	b.touch()
	return nil
}

func (b *Bid) change(next Status) error {
	newStatus, err := b.status.ChangeTo(next)
	if err != nil {
		return err
	}
	b.status = newStatus
	b.touch()
	return nil
}

func (b *Bid) touch() {
	b.updatedAt = time.Now().UTC()
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	b.orderID = orderID
	return nil
}

func (b *Bid) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}
	b.driverID = driverID
	return nil
}

func (b *Bid) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrPriceIsNotPositive, price)
	}
	b.price = price
	return nil
}
