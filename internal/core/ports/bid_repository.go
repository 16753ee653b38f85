package ports

import (
	"context"

	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
type BidRepository interface {
	// Add persists a new bid aggregate to storage.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists changes to an existing bid aggregate.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// Get retrieves a bid aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetAllByOrder retrieves all bids for an order, newest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)

	// GetPendingByOrderAndDriver retrieves the driver's pending bid on the
	// order, if any. At most one exists; a re-submission replaces it.
	GetPendingByOrderAndDriver(ctx context.Context, orderID, driverID kernel.UUID) (*bid.Bid, error)

	// DeclineSiblings moves every pending or countered bid on the order,
	// except the winner, to Declined. Part of the acceptance transaction.
	DeclineSiblings(ctx context.Context, orderID, winnerBidID kernel.UUID) error

	// ReinstateSiblings moves the order's declined bids back to Pending.
	// Compensation path when an escrow hold fails after acceptance.
	ReinstateSiblings(ctx context.Context, orderID, winnerBidID kernel.UUID) error

	// DeclineAllPending moves every pending or countered bid on the order to
	// Declined. Used by the bidding-window sweep.
	DeclineAllPending(ctx context.Context, orderID kernel.UUID) error
}
