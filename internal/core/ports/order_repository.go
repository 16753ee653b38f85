// Package ports defines repository and gateway interfaces for the freight
// marketplace core. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AssignIfUnassigned performs the race-critical check-and-set of bid
	// acceptance as a single atomic statement: the order's assignment and
	// Accepted status are written only if no bid is assigned yet and the
	// order is still in Bidding.
	//
	// Returns order.ErrAlreadyAssigned if another bid won the race; the
	// statement has no side effects in that case.
	AssignIfUnassigned(
		ctx context.Context,
		orderID, driverID, bidID kernel.UUID,
		finalPrice kernel.Money,
	) error

	// CountActiveByDriver counts the driver's orders in Accepted, Pickup or
	// InTransit. Used for the driver capacity invariant: at most one active
	// order per driver at any instant.
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error)

	// GetExpiredForBidding retrieves orders in Pending or Bidding whose
	// bidding window closed before the given instant and that have no
	// assigned bid. Used by the bidding-window sweep.
	GetExpiredForBidding(ctx context.Context, now time.Time) ([]*order.Order, error)
}
