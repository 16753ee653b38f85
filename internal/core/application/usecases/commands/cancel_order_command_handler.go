package commands

import (
	"context"
	"errors"
	"log/slog"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/domain/services"
	"freightline/internal/pkg/keyedmutex"
)

// ErrNotOrderParticipant is returned when the cancelling party is neither the
// order's customer nor its assigned driver.
var ErrNotOrderParticipant = errors.New("actor is not a participant of this order")

// CancelOrderCommandHandler handles order cancellation by any of the parties.
//
// Cancellation compensation depends on who cancels and when:
//   - before acceptance there is no escrow, the order just terminates
//   - a driver cancelling after acceptance forfeits the commitment fee and
//     the customer's fare is released
//   - a customer cancelling before pickup gets both holds released
//   - a customer cancelling at or after pickup compensates the driver with
//     part of the fare
//
// Cancellations of the same order serialize on the order's lock so a
// concurrent duplicate observes the terminal status instead of settling twice.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.SettlementPolicy
	settler    EscrowSettler
	orderLocks *keyedmutex.KeyedMutex
	publisher  EventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.SettlementPolicy,
	settler EscrowSettler,
	orderLocks *keyedmutex.KeyedMutex,
	publisher EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		settler:    settler,
		orderLocks: orderLocks,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
//
// Returns ErrNotOrderParticipant when the actor has no standing to cancel;
// cancelling an already terminal order surfaces as
// *order.InvalidTransitionError.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.orderLocks.Lock(cmd.OrderID().String())
	defer unlock()

	statusAtCancel, err := h.cancel(ctx, cmd)
	if err != nil {
		return err
	}

	if statusAtCancel.IsActive() {
		// The order is cancelled regardless of how settlement goes; failed
		// entries are retried by the reconciliation sweep.
		if err = h.settleCancellation(ctx, cmd, statusAtCancel); err != nil {
			h.logger.WarnContext(ctx, "cancellation settlement incomplete",
				"order_id", cmd.OrderID().String(),
				"actor", cmd.Actor().String(),
				"error", err)
		}
	}

	h.publisher.publish(ctx, events.NewOrderCancelled(cmd.OrderID(), cmd.Actor()))

	return nil
}

// cancel terminates the order and its open bids in one transaction, returning
// the status the order held right before cancellation.
func (h CancelOrderCommandHandler) cancel(
	ctx context.Context,
	cmd CancelOrderCommand,
) (order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	theOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	if err = h.authorize(theOrder, cmd); err != nil {
		return order.Unknown, err
	}

	statusAtCancel := theOrder.Status()

	if err = theOrder.Cancel(); err != nil {
		return order.Unknown, err
	}
	if err = orderRepo.Update(ctx, theOrder); err != nil {
		return order.Unknown, err
	}

	if err = uow.BidRepository().DeclineAllPending(ctx, theOrder.ID()); err != nil {
		return order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return statusAtCancel, nil
}

// authorize checks the acting party's standing: customers cancel their own
// orders, drivers the order they are assigned to, operators any order.
func (h CancelOrderCommandHandler) authorize(theOrder *order.Order, cmd CancelOrderCommand) error {
	switch cmd.Actor() {
	case order.ActorCustomer:
		if !theOrder.CustomerID().IsEqual(cmd.ActorID()) {
			return ErrNotOrderParticipant
		}
	case order.ActorDriver:
		assigned := theOrder.AssignedDriver()
		if assigned == nil || !assigned.IsEqual(cmd.ActorID()) {
			return ErrNotOrderParticipant
		}
	case order.ActorOperator:
		// Back-office staff may cancel any order.
	default:
		return ErrNotOrderParticipant
	}
	return nil
}

func (h CancelOrderCommandHandler) settleCancellation(
	ctx context.Context,
	cmd CancelOrderCommand,
	statusAtCancel order.Status,
) error {
	outcome, err := h.policy.CancellationOutcome(statusAtCancel, cmd.Actor())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = h.settler.settleOutcome(
		ctx, uow.EscrowRepository(), cmd.OrderID(), outcome,
	); err != nil {
		// Failed entries were already persisted by the settler; commit what
		// succeeded and report the rest.
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return errors.Join(err, commitErr)
		}
		return err
	}

	return uow.Commit(ctx)
}
