package ports

import (
	"context"

	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
)

// EscrowRepository defines the persistence contract for escrow entries.
type EscrowRepository interface {
	// Add persists a new escrow entry to storage.
	Add(ctx context.Context, aggregate *escrow.Entry) error

	// Update persists changes to an existing escrow entry.
	Update(ctx context.Context, aggregate *escrow.Entry) error

	// Get retrieves an escrow entry by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*escrow.Entry, error)

	// GetByOrder retrieves all escrow entries for an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*escrow.Entry, error)

	// GetByOrderAndKind retrieves the order's entry of the given kind, if any.
	GetByOrderAndKind(ctx context.Context, orderID kernel.UUID, kind escrow.Kind) (*escrow.Entry, error)

	// GetAllFailed retrieves entries whose settlement failed and awaits the
	// reconciliation sweep.
	GetAllFailed(ctx context.Context) ([]*escrow.Entry, error)
}
