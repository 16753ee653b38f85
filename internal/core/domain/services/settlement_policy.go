package services

import (
	"errors"

	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
)

// CommitmentFeePercent is the share of the order's base price held from the
// driver as a refundable commitment fee on acceptance.
const CommitmentFeePercent = 40

// MidTripFareCapturePercent is the share of the fare captured when the
// customer cancels at or after pickup. The remainder is refunded.
const MidTripFareCapturePercent = 50

// ErrNoSettlementForStatus is returned when a cancellation outcome is
// requested for a status that carries no escrow entries.
var ErrNoSettlementForStatus = errors.New("no escrow settlement applies to this status")

// Outcome describes what happens to the two escrow entries of an order when
// it reaches a terminal state.
type Outcome struct {
	// FeeOp is the settlement applied to the driver's commitment fee entry.
	FeeOp escrow.Operation

	// FareOp is the settlement applied to the customer's fare entry.
	FareOp escrow.Operation

	// FareCapturePercent is the share of the fare charged when FareOp is
	// OperationCapture; the remainder is refunded by the gateway.
	FareCapturePercent int64
}

// SettlementPolicy is the domain service deciding commitment fee amounts and
// the disposition of escrow holds when an order terminates.
//
// Policy decisions:
//   - Delivery: fare captured in full, commitment fee refunded
//   - Driver-initiated cancellation after acceptance: commitment fee
//     forfeited, fare refunded in full (including mid-trip; the fare-hold
//     disposition for this case is not fixed by the source, see DESIGN.md)
//   - Customer-initiated cancellation before pickup: both refunded
//   - Customer-initiated cancellation at or after pickup: half the fare is
//     captured as driver compensation, the commitment fee is refunded
//   - Operator cancellations settle like customer cancellations before pickup
type SettlementPolicy struct{}

// NewSettlementPolicy creates a new SettlementPolicy instance.
func NewSettlementPolicy() SettlementPolicy {
	return SettlementPolicy{}
}

// CommitmentFee computes the driver's commitment fee for an order:
// CommitmentFeePercent of the base price.
func (SettlementPolicy) CommitmentFee(basePrice kernel.Money) (kernel.Money, error) {
	return basePrice.Percent(CommitmentFeePercent)
}

// DeliveryOutcome returns the settlement applied when an order is delivered.
func (SettlementPolicy) DeliveryOutcome() Outcome {
	return Outcome{
		FeeOp:              escrow.OperationRefund,
		FareOp:             escrow.OperationCapture,
		FareCapturePercent: 100,
	}
}

// CancellationOutcome returns the settlement applied when an order in the
// given status is cancelled by the given actor. Statuses before acceptance
// have no escrow entries and return ErrNoSettlementForStatus.
func (SettlementPolicy) CancellationOutcome(status order.Status, actor order.Actor) (Outcome, error) {
	if err := actor.Validate(); err != nil {
		return Outcome{}, err
	}
	if !status.IsActive() {
		return Outcome{}, ErrNoSettlementForStatus
	}

	if actor == order.ActorDriver {
		return Outcome{
			FeeOp:              escrow.OperationForfeit,
			FareOp:             escrow.OperationRefund,
			FareCapturePercent: 0,
		}, nil
	}

	if actor == order.ActorCustomer && status != order.Accepted {
		return Outcome{
			FeeOp:              escrow.OperationRefund,
			FareOp:             escrow.OperationCapture,
			FareCapturePercent: MidTripFareCapturePercent,
		}, nil
	}

	return Outcome{
		FeeOp:              escrow.OperationRefund,
		FareOp:             escrow.OperationRefund,
		FareCapturePercent: 0,
	}, nil
}
