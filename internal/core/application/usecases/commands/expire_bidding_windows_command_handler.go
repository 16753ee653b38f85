package commands

import (
	"context"
	"log/slog"
	"time"
)

// ExpireBiddingWindowsCommandHandler sweeps orders whose bidding window
// closed without a winner. Each expired order moves to Declined and every
// pending or countered bid on it is declined.
//
// The sweep only sees orders with no assigned bid, so it never races a
// successful acceptance: an order that got a winner after the query simply
// fails the status transition and is skipped until the next run.
type ExpireBiddingWindowsCommandHandler struct {
	uowFactory BidUoWFactory
	logger     *slog.Logger
}

// NewExpireBiddingWindowsCommandHandler creates a handler for the bidding
// window sweep.
func NewExpireBiddingWindowsCommandHandler(
	uowFactory BidUoWFactory,
	logger *slog.Logger,
) ExpireBiddingWindowsCommandHandler {
	return ExpireBiddingWindowsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the sweep command. Orders that fail to expire are logged
// and skipped; the sweep continues with the rest.
func (h ExpireBiddingWindowsCommandHandler) Handle(ctx context.Context, cmd ExpireBiddingWindowsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	bidRepo := uow.BidRepository()

	expired, err := orderRepo.GetExpiredForBidding(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	declined := 0
	for _, theOrder := range expired {
		if err = theOrder.DeclineExpired(); err != nil {
			h.logger.WarnContext(ctx, "skipping order in bidding window sweep",
				"order_id", theOrder.ID().String(),
				"status", theOrder.Status().String(),
				"error", err)
			continue
		}
		if err = orderRepo.Update(ctx, theOrder); err != nil {
			return err
		}
		if err = bidRepo.DeclineAllPending(ctx, theOrder.ID()); err != nil {
			return err
		}
		declined++
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if declined > 0 {
		h.logger.InfoContext(ctx, "bidding window sweep declined expired orders",
			"count", declined)
	}

	return nil
}
