package ports

import (
	"context"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
)

// PaymentGateway is the narrow interface to the external payment provider.
// referenceID is the caller's idempotency key (the escrow entry id); the
// returned gateway transaction id is stored on the entry. Protocol details of
// the concrete provider are an adapter concern.
type PaymentGateway interface {
	// Authorize places a hold on the payer's funds.
	Authorize(ctx context.Context, referenceID string, amount kernel.Money) (gatewayTxID string, err error)

	// Capture charges previously authorized funds, fully or partially.
	Capture(ctx context.Context, gatewayRef string, amount kernel.Money) (gatewayTxID string, err error)

	// Refund releases previously authorized funds back to the payer.
	Refund(ctx context.Context, gatewayRef string, amount kernel.Money) (gatewayTxID string, err error)
}

// NotificationSink receives lifecycle events for delivery to customers and
// drivers (push/SMS/WhatsApp fan-out happens downstream). Delivery is
// best-effort: callers log failures and never fail the state transition that
// produced the event.
type NotificationSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// Actor is the authenticated caller of an exposed operation.
type Actor struct {
	ID   kernel.UUID
	Role order.Actor
}

// IdentityProvider resolves the calling actor's id and role from a credential
// for authorization checks.
type IdentityProvider interface {
	ResolveActor(ctx context.Context, credential string) (Actor, error)
}

// Coordinates is a driver position reported by the location service.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// LocationProvider exposes read-only driver coordinates. Positions are
// informational and never used for invariants.
type LocationProvider interface {
	DriverLocation(ctx context.Context, driverID kernel.UUID) (Coordinates, error)
}
