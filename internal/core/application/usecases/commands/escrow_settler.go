package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/services"
	"freightline/internal/core/ports"
)

// ErrEscrowFailure is the sentinel for failed escrow operations.
// Escrow failures during acceptance are retryable after the saga rollback;
// failures during terminal settlement are queued for reconciliation.
var ErrEscrowFailure = errors.New("escrow operation failed")

// EscrowFailureError reports a payment-gateway failure for a settlement or
// hold operation.
type EscrowFailureError struct {
	Op    escrow.Operation
	Cause error
}

func (e *EscrowFailureError) Error() string {
	return fmt.Sprintf("escrow operation failed: %s (cause: %s)", e.Op, e.Cause)
}

func (e *EscrowFailureError) Unwrap() error {
	return ErrEscrowFailure
}

// EscrowSettler applies settlement operations to escrow entries through the
// payment gateway. Settlements are idempotent per entry: an entry already in
// the operation's target status is left alone and no gateway call is made,
// which makes duplicate callbacks and sweep retries safe.
type EscrowSettler struct {
	gateway ports.PaymentGateway
	logger  *slog.Logger
}

// NewEscrowSettler creates an EscrowSettler over the given payment gateway.
func NewEscrowSettler(gateway ports.PaymentGateway, logger *slog.Logger) EscrowSettler {
	return EscrowSettler{gateway: gateway, logger: logger}
}

// settle moves amount through the gateway and records the outcome on the entry.
// Forfeiture is a capture of the driver's commitment fee by the platform.
// A gateway failure marks the entry Failed with the attempted operation and
// amount, reports it for the operator, and returns an *EscrowFailureError;
// the entry's owning order keeps its status.
func (s EscrowSettler) settle(
	ctx context.Context,
	repo ports.EscrowRepository,
	entry *escrow.Entry,
	op escrow.Operation,
	amount kernel.Money,
) error {
	target, ok := op.Target()
	if !ok {
		return &escrow.InvalidStatusChangeError{From: entry.Status(), To: escrow.StatusUnknown}
	}
	// The settlement already happened; the gateway must not be charged twice.
	if entry.Status() == target {
		return nil
	}

	var gatewayErr error
	switch op {
	case escrow.OperationCapture, escrow.OperationForfeit:
		_, gatewayErr = s.gateway.Capture(ctx, entry.GatewayRef(), amount)
	case escrow.OperationRefund:
		_, gatewayErr = s.gateway.Refund(ctx, entry.GatewayRef(), amount)
	}

	if gatewayErr != nil {
		if err := entry.MarkFailed(op, amount); err != nil {
			return err
		}
		if err := repo.Update(ctx, entry); err != nil {
			return err
		}
		s.logger.ErrorContext(ctx, "escrow settlement failed, queued for reconciliation",
			"entry_id", entry.ID().String(),
			"order_id", entry.OrderID().String(),
			"operation", op.String(),
			"amount", amount.String(),
			"error", gatewayErr)
		return &EscrowFailureError{Op: op, Cause: gatewayErr}
	}

	if err := entry.Apply(op); err != nil {
		return err
	}
	return repo.Update(ctx, entry)
}

// settleOutcome applies a terminal settlement outcome to both of an order's
// escrow entries. Each entry settles independently: a failure on one does not
// stop the other, failed entries are left to the reconciliation sweep, and
// the joined errors are returned.
func (s EscrowSettler) settleOutcome(
	ctx context.Context,
	repo ports.EscrowRepository,
	orderID kernel.UUID,
	outcome services.Outcome,
) error {
	feeEntry, feeErr := repo.GetByOrderAndKind(ctx, orderID, escrow.KindCommitmentFee)
	if feeErr == nil {
		feeErr = s.settle(ctx, repo, feeEntry, outcome.FeeOp, feeEntry.SettlementAmount())
	}

	fareEntry, fareErr := repo.GetByOrderAndKind(ctx, orderID, escrow.KindFare)
	if fareErr == nil {
		var amount kernel.Money
		amount, fareErr = fareSettlementAmount(fareEntry, outcome)
		if fareErr == nil {
			fareErr = s.settle(ctx, repo, fareEntry, outcome.FareOp, amount)
		}
	}

	return errors.Join(feeErr, fareErr)
}

// fareSettlementAmount computes how much of the fare hold a settlement moves.
// Partial captures take the outcome's share of the full hold; a retry after a
// failure re-uses the originally attempted amount.
func fareSettlementAmount(entry *escrow.Entry, outcome services.Outcome) (kernel.Money, error) {
	if entry.FailedAmount() != nil {
		return *entry.FailedAmount(), nil
	}
	if outcome.FareOp == escrow.OperationCapture && outcome.FareCapturePercent < 100 {
		return entry.Amount().Percent(outcome.FareCapturePercent)
	}
	return entry.Amount(), nil
}
