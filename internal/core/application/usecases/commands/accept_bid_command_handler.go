package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/domain/services"
	"freightline/internal/core/ports"
	"freightline/internal/pkg/keyedmutex"
)

var (
	// ErrDriverBusy is returned when the bidding driver already carries an
	// active order. A driver serves at most one order at a time.
	ErrDriverBusy = errors.New("driver already has an active order")

	// ErrNotOrderOwner is returned when the accepting customer does not own
	// the order the bid is for.
	ErrNotOrderOwner = errors.New("customer does not own this order")

	// ErrAcceptCoolingDown is returned when a bid is re-accepted too soon
	// after a payment failure rolled the previous acceptance back.
	ErrAcceptCoolingDown = errors.New("bid acceptance is cooling down after a payment failure")
)

// AcceptBidCommandHandler orchestrates bid acceptance, the race-critical
// operation of the marketplace.
//
// Acceptance runs in two phases:
//
//  1. Assignment. Under the driver's lock, the handler checks the driver's
//     capacity and performs an atomic check-and-set on the order: the
//     assignment is written only if no other bid won first. The winning bid
//     moves to Accepted and every sibling to Declined, in one transaction.
//     Losing the race surfaces as order.ErrAlreadyAssigned with no side
//     effects.
//
//  2. Escrow. Outside any lock, the handler authorizes the driver's
//     commitment fee and the customer's fare with the payment gateway. If
//     either hold fails, phase 1 is compensated: holds already placed are
//     released, the order returns to Bidding, the winning bid and its
//     declined siblings return to Pending, and the bid enters a short
//     cooldown before it may be accepted again.
//
// Exactly one of these outcomes holds afterwards: the order is Accepted with
// both holds in place, or nothing changed.
type AcceptBidCommandHandler struct {
	uowFactory  UoWFactory
	gateway     ports.PaymentGateway
	policy      services.SettlementPolicy
	driverLocks *keyedmutex.KeyedMutex
	cooldown    *acceptCooldown
	publisher   EventPublisher
	logger      *slog.Logger
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance.
// cooldownDuration bounds how soon a bid may be re-accepted after a payment
// failure rolled a previous acceptance back.
func NewAcceptBidCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	policy services.SettlementPolicy,
	driverLocks *keyedmutex.KeyedMutex,
	cooldownDuration time.Duration,
	publisher EventPublisher,
	logger *slog.Logger,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory:  uowFactory,
		gateway:     gateway,
		policy:      policy,
		driverLocks: driverLocks,
		cooldown:    newAcceptCooldown(cooldownDuration),
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle processes the bid acceptance command.
//
// Returns:
//   - nil and no side effects when the bid is already accepted (idempotent)
//   - ErrNotOrderOwner when the customer does not own the order
//   - order.ErrAlreadyAssigned when another bid won the race
//   - ErrDriverBusy when the driver already carries an active order
//   - ErrAcceptCoolingDown when a recent payment failure blocks the retry
//   - an *EscrowFailureError (retryable) when a payment hold failed and the
//     acceptance was rolled back
func (h AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.cooldown.active(cmd.BidID()) {
		return ErrAcceptCoolingDown
	}

	theOrder, theBid, err := h.assign(ctx, cmd)
	if err != nil {
		return err
	}
	if theOrder == nil {
		// Already accepted earlier; nothing to do.
		return nil
	}

	if err = h.holdEscrow(ctx, theOrder, theBid); err != nil {
		return err
	}

	h.publisher.publish(ctx, events.NewBidAccepted(
		theOrder.ID(), theBid.ID(), theBid.DriverID(), theBid.Price()))

	return nil
}

// assign runs the assignment phase under the driver's lock. A nil order with
// a nil error means the bid was already accepted and the call is a replay.
func (h AcceptBidCommandHandler) assign(
	ctx context.Context,
	cmd AcceptBidCommand,
) (*order.Order, *bid.Bid, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	bidRepo := uow.BidRepository()

	theBid, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return nil, nil, err
	}

	theOrder, err := orderRepo.Get(ctx, theBid.OrderID())
	if err != nil {
		return nil, nil, err
	}

	if !theOrder.CustomerID().IsEqual(cmd.CustomerID()) {
		return nil, nil, ErrNotOrderOwner
	}

	if theBid.Status() == bid.Accepted {
		assigned := theOrder.AssignedBid()
		if assigned != nil && assigned.IsEqual(theBid.ID()) {
			return nil, nil, nil
		}
		return nil, nil, order.ErrAlreadyAssigned
	}

	// Serialize on the driver so the capacity check and the commit below are
	// atomic with respect to this driver's other acceptances.
	unlock := h.driverLocks.Lock(theBid.DriverID().String())
	defer unlock()

	activeCount, err := orderRepo.CountActiveByDriver(ctx, theBid.DriverID())
	if err != nil {
		return nil, nil, err
	}
	if activeCount > 0 {
		return nil, nil, ErrDriverBusy
	}

	if err = orderRepo.AssignIfUnassigned(
		ctx, theOrder.ID(), theBid.DriverID(), theBid.ID(), theBid.Price(),
	); err != nil {
		return nil, nil, err
	}
	if err = theOrder.Assign(theBid.DriverID(), theBid.ID(), theBid.Price()); err != nil {
		return nil, nil, err
	}

	if err = theBid.Accept(); err != nil {
		return nil, nil, err
	}
	if err = bidRepo.Update(ctx, theBid); err != nil {
		return nil, nil, err
	}

	if err = bidRepo.DeclineSiblings(ctx, theOrder.ID(), theBid.ID()); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return theOrder, theBid, nil
}

// holdEscrow authorizes the commitment fee and the fare with the payment
// gateway and persists the resulting escrow entries. Runs outside any lock.
// A failure releases whatever was already held and rolls the assignment back.
func (h AcceptBidCommandHandler) holdEscrow(
	ctx context.Context,
	theOrder *order.Order,
	theBid *bid.Bid,
) error {
	fee, err := h.policy.CommitmentFee(theOrder.BasePrice())
	if err != nil {
		return err
	}

	feeEntry, err := h.authorize(ctx, theOrder.ID(), escrow.PayerDriver, escrow.KindCommitmentFee, fee)
	if err != nil {
		h.rollbackAcceptance(ctx, theOrder.ID(), theBid.ID(), err)
		return &EscrowFailureError{Op: escrow.OperationNone, Cause: err}
	}

	fareEntry, err := h.authorize(ctx, theOrder.ID(), escrow.PayerCustomer, escrow.KindFare, theBid.Price())
	if err != nil {
		h.releaseHold(ctx, feeEntry)
		h.rollbackAcceptance(ctx, theOrder.ID(), theBid.ID(), err)
		return &EscrowFailureError{Op: escrow.OperationNone, Cause: err}
	}

	if err = h.persistEntries(ctx, feeEntry, fareEntry); err != nil {
		h.releaseHold(ctx, feeEntry)
		h.releaseHold(ctx, fareEntry)
		h.rollbackAcceptance(ctx, theOrder.ID(), theBid.ID(), err)
		return err
	}

	return nil
}

// authorize places one hold with the gateway and builds its escrow entry.
// The fresh entry id doubles as the idempotency reference sent to the gateway.
func (h AcceptBidCommandHandler) authorize(
	ctx context.Context,
	orderID kernel.UUID,
	payer escrow.PayerRole,
	kind escrow.Kind,
	amount kernel.Money,
) (*escrow.Entry, error) {
	entryID := kernel.NewUUID()

	gatewayRef, err := h.gateway.Authorize(ctx, entryID.String(), amount)
	if err != nil {
		h.logger.WarnContext(ctx, "escrow authorization failed",
			"order_id", orderID.String(),
			"kind", kind.String(),
			"amount", amount.String(),
			"error", err)
		return nil, err
	}

	return escrow.NewEntry(entryID, orderID, payer, kind, amount, gatewayRef)
}

func (h AcceptBidCommandHandler) persistEntries(ctx context.Context, entries ...*escrow.Entry) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	escrowRepo := uow.EscrowRepository()
	for _, entry := range entries {
		if err := escrowRepo.Add(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// releaseHold undoes a gateway authorization that will not be kept. Failures
// only get logged; the reconciliation sweep cannot help here because the
// entry is never persisted, so the operator has to release the hold manually.
func (h AcceptBidCommandHandler) releaseHold(ctx context.Context, entry *escrow.Entry) {
	if _, err := h.gateway.Refund(ctx, entry.GatewayRef(), entry.Amount()); err != nil {
		h.logger.ErrorContext(ctx, "failed to release gateway hold during rollback",
			"order_id", entry.OrderID().String(),
			"kind", entry.Kind().String(),
			"gateway_ref", entry.GatewayRef(),
			"amount", entry.Amount().String(),
			"error", err)
	}
}

// rollbackAcceptance compensates the assignment phase after an escrow
// failure: the order returns to Bidding, the winning bid and its declined
// siblings return to Pending, and the bid starts its acceptance cooldown.
func (h AcceptBidCommandHandler) rollbackAcceptance(
	ctx context.Context,
	orderID, bidID kernel.UUID,
	cause error,
) {
	h.cooldown.set(bidID)

	h.logger.WarnContext(ctx, "rolling back bid acceptance after escrow failure",
		"order_id", orderID.String(),
		"bid_id", bidID.String(),
		"error", cause)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	bidRepo := uow.BidRepository()

	theOrder, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}
	if err = theOrder.Unassign(); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}
	if err = orderRepo.Update(ctx, theOrder); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}

	theBid, err := bidRepo.Get(ctx, bidID)
	if err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}
	if err = theBid.Reinstate(); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}
	if err = bidRepo.Update(ctx, theBid); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}

	if err = bidRepo.ReinstateSiblings(ctx, orderID, bidID); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.logCompensationFailure(ctx, orderID, bidID, err)
	}
}

func (h AcceptBidCommandHandler) logCompensationFailure(
	ctx context.Context,
	orderID, bidID kernel.UUID,
	err error,
) {
	h.logger.ErrorContext(ctx, "bid acceptance compensation failed, manual intervention required",
		"order_id", orderID.String(),
		"bid_id", bidID.String(),
		"error", err)
}
