package commands

import (
	"context"
	"errors"
	"log/slog"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/domain/services"
)

// ErrNotAssignedDriver is returned when the reporting driver is not the one
// assigned to the order.
var ErrNotAssignedDriver = errors.New("driver is not assigned to this order")

// AdvanceOrderCommandHandler handles lifecycle progress reports from the
// assigned driver.
//
// Delivery is the interesting stage: once the order commits to Delivered, the
// fare is captured in full and the commitment fee refunded. Settlement runs
// after the status commit; a gateway failure marks the affected entry for the
// reconciliation sweep and never un-delivers the order.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.SettlementPolicy
	settler    EscrowSettler
	publisher  EventPublisher
	logger     *slog.Logger
}

// NewAdvanceOrderCommandHandler creates a handler for lifecycle progress reports.
func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.SettlementPolicy,
	settler EscrowSettler,
	publisher EventPublisher,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		settler:    settler,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the progress report.
// Returns ErrNotAssignedDriver when the driver is not assigned to the order;
// illegal stage moves surface as *order.InvalidTransitionError.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	theOrder, err := h.advance(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.Stage() != order.Delivered {
		return nil
	}

	// The order is delivered regardless of how settlement goes; failed
	// entries are retried by the reconciliation sweep.
	if err = h.settleDelivery(ctx, cmd); err != nil {
		h.logger.WarnContext(ctx, "delivery settlement incomplete",
			"order_id", cmd.OrderID().String(),
			"error", err)
	}

	h.publisher.publish(ctx, events.NewOrderDelivered(theOrder.ID(), cmd.DriverID()))

	return nil
}

// advance applies the reported stage in its own transaction, which is closed
// before any settlement gateway calls run.
func (h AdvanceOrderCommandHandler) advance(
	ctx context.Context,
	cmd AdvanceOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	theOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	assigned := theOrder.AssignedDriver()
	if assigned == nil || !assigned.IsEqual(cmd.DriverID()) {
		return nil, ErrNotAssignedDriver
	}

	switch cmd.Stage() {
	case order.Pickup:
		err = theOrder.StartPickup()
	case order.InTransit:
		err = theOrder.StartTransit()
	case order.Delivered:
		err = theOrder.Complete()
	default:
		err = ErrStageIsInvalid
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, theOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return theOrder, nil
}

func (h AdvanceOrderCommandHandler) settleDelivery(ctx context.Context, cmd AdvanceOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := h.settler.settleOutcome(
		ctx, uow.EscrowRepository(), cmd.OrderID(), h.policy.DeliveryOutcome(),
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
