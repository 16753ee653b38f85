package order

import (
	"errors"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyAssigned is returned when a bid acceptance loses the race:
	// another bid has already been assigned to the order.
	ErrAlreadyAssigned = errors.New("order already has an accepted bid")

	// ErrCargoDescriptionTooLong is returned when the cargo description exceeds the limit.
	ErrCargoDescriptionTooLong = errors.New("cargo description exceeds 1000 characters")
)

// CargoDescriptionMaxLength bounds the free-form cargo description.
const CargoDescriptionMaxLength = 1000

// Order represents a freight shipment request in the marketplace. It is the
// aggregate root that manages the order lifecycle from posting through bidding,
// assignment and delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer identifier
//   - Pickup and destination addresses must be valid
//   - Base price must not be negative
//   - A driver is assigned if and only if the status is Accepted, Pickup,
//     InTransit or Delivered
//   - Status transitions follow the lifecycle transition table
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	pickup           kernel.Address
	destination      kernel.Address
	cargoDescription string
	truckClass       TruckClass
	basePrice        kernel.Money
	finalPrice       *kernel.Money
	status           Status
	scheduledAt      time.Time
	biddingClosesAt  *time.Time
	assignedDriverID *kernel.UUID
	assignedBidID    *kernel.UUID
	createdAt        time.Time
	updatedAt        time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// This is the only way to create a valid new Order, ensuring all business
// invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order
//   - customerID: Identifier of the posting customer
//   - pickup, destination: Validated pickup and destination addresses
//   - cargoDescription: Free-form cargo description (may be empty)
//   - truckClass: Required vehicle category
//   - basePrice: Customer's asking price (must not be negative)
//   - scheduledAt: When the shipment should be picked up
//
// Returns the created order or a validation error joining every failed check.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	pickup kernel.Address,
	destination kernel.Address,
	cargoDescription string,
	truckClass TruckClass,
	basePrice kernel.Money,
	scheduledAt time.Time,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		scheduledAt:   scheduledAt,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPickup(pickup),
		o.setDestination(destination),
		o.setCargoDescription(cargoDescription),
		o.setTruckClass(truckClass),
		o.setBasePrice(basePrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without running the
// creation-time defaults. All invariants are still verified, including the
// status/driver consistency rule.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	pickup kernel.Address,
	destination kernel.Address,
	cargoDescription string,
	truckClass TruckClass,
	basePrice kernel.Money,
	finalPrice *kernel.Money,
	status Status,
	scheduledAt time.Time,
	biddingClosesAt *time.Time,
	assignedDriverID *kernel.UUID,
	assignedBidID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		finalPrice:      finalPrice,
		scheduledAt:     scheduledAt,
		biddingClosesAt: biddingClosesAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPickup(pickup),
		o.setDestination(destination),
		o.setCargoDescription(cargoDescription),
		o.setTruckClass(truckClass),
		o.setBasePrice(basePrice),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if assignedDriverID != nil {
		if err := assignedDriverID.Validate(); err != nil {
			return nil, err
		}
		o.assignedDriverID = assignedDriverID
	}
	if assignedBidID != nil {
		if err := assignedBidID.Validate(); err != nil {
			return nil, err
		}
		o.assignedBidID = assignedBidID
	}

	if err := o.status.ValidateCanHaveDriver(o.assignedDriverID != nil); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the posting customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Pickup returns the pickup address.
func (o *Order) Pickup() kernel.Address {
	return o.pickup
}

// Destination returns the destination address.
func (o *Order) Destination() kernel.Address {
	return o.destination
}

// CargoDescription returns the free-form cargo description.
func (o *Order) CargoDescription() string {
	return o.cargoDescription
}

// TruckClass returns the required vehicle category.
func (o *Order) TruckClass() TruckClass {
	return o.truckClass
}

// BasePrice returns the customer's asking price.
func (o *Order) BasePrice() kernel.Money {
	return o.basePrice
}

// FinalPrice returns the accepted bid price, or nil while no bid is accepted.
func (o *Order) FinalPrice() *kernel.Money {
	return o.finalPrice
}

// AskingPrice returns the price a counter-offer must undercut: the final price
// once a bid is accepted, otherwise the base price.
func (o *Order) AskingPrice() kernel.Money {
	if o.finalPrice != nil {
		return *o.finalPrice
	}
	return o.basePrice
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ScheduledAt returns the requested pickup time.
func (o *Order) ScheduledAt() time.Time {
	return o.scheduledAt
}

// BiddingClosesAt returns the bidding window deadline, or nil if bidding never opened.
func (o *Order) BiddingClosesAt() *time.Time {
	return o.biddingClosesAt
}

// AssignedDriver returns the assigned driver's ID, or nil if no driver is assigned.
func (o *Order) AssignedDriver() *kernel.UUID {
	return o.assignedDriverID
}

// AssignedBid returns the accepted bid's ID, or nil if no bid is accepted.
func (o *Order) AssignedBid() *kernel.UUID {
	return o.assignedBidID
}

// CreatedAt returns when the order was posted.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// OpenBidding moves a pending order into the Bidding status and stamps the
// bidding window deadline. Called when the first bid arrives.
func (o *Order) OpenBidding(closesAt time.Time) error {
	newStatus, err := o.status.TransitionTo(Bidding)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.biddingClosesAt = &closesAt
	o.touch()
	return nil
}

// Assign records the winning bid and moves the order into Accepted.
//
// Business rules:
//   - The order must be in Bidding status
//   - No other bid may already be assigned (ErrAlreadyAssigned)
//   - The final price becomes the accepted bid's price
//
// The atomic check-and-set against concurrent acceptances happens at the
// repository level; this method enforces the same rule for in-memory use.
func (o *Order) Assign(driverID kernel.UUID, bidID kernel.UUID, finalPrice kernel.Money) error {
	if err := errors.Join(driverID.Validate(), bidID.Validate(), finalPrice.Validate()); err != nil {
		return err
	}
	if o.assignedBidID != nil {
		return ErrAlreadyAssigned
	}

	newStatus, err := o.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedDriverID = &driverID
	o.assignedBidID = &bidID
	o.finalPrice = &finalPrice
	o.touch()
	return nil
}

// Unassign reverts an accepted order back to Bidding, clearing the assignment.
// This is the compensation path when an escrow hold fails after acceptance.
func (o *Order) Unassign() error {
	if o.status != Accepted {
		return &InvalidTransitionError{From: o.status, To: Bidding}
	}

	o.status = Bidding
	o.assignedDriverID = nil
	o.assignedBidID = nil
	o.finalPrice = nil
	o.touch()
	return nil
}

// StartPickup moves an accepted order into Pickup.
func (o *Order) StartPickup() error {
	return o.transition(Pickup)
}

// StartTransit moves an order from Pickup into InTransit.
func (o *Order) StartTransit() error {
	return o.transition(InTransit)
}

// Complete marks the order as delivered. Terminal.
func (o *Order) Complete() error {
	return o.transition(Delivered)
}

// Cancel moves the order into Cancelled from any non-terminal status.
// The assignment is cleared so the status/driver invariant holds for the
// terminal record; escrow compensation is decided by the cancellation policy
// before the assignment is dropped.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedDriverID = nil
	o.assignedBidID = nil
	o.touch()
	return nil
}

// DeclineExpired moves a pending or bidding order whose window has expired
// into Declined. Used by the bidding-window sweep only.
func (o *Order) DeclineExpired() error {
	return o.transition(Declined)
}

// BiddingExpired reports whether the bidding window has passed at the given instant.
// Orders that never opened bidding fall back to the scheduled pickup time.
func (o *Order) BiddingExpired(now time.Time) bool {
	if o.biddingClosesAt != nil {
		return now.After(*o.biddingClosesAt)
	}
	return now.After(o.scheduledAt)
}

func (o *Order) transition(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setPickup(pickup kernel.Address) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup location", err)
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDestination(destination kernel.Address) error {
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination location", err)
	}
	o.destination = destination
	return nil
}

func (o *Order) setCargoDescription(description string) error {
	if len(description) > CargoDescriptionMaxLength {
		return ErrCargoDescriptionTooLong
	}
	o.cargoDescription = description
	return nil
}

func (o *Order) setTruckClass(class TruckClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	o.truckClass = class
	return nil
}

func (o *Order) setBasePrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.basePrice = price
	return nil
}
