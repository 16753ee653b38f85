package commands

import (
	"context"
	"errors"
	"time"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/ports"
	"freightline/internal/pkg/errs"
)

// ErrBiddingClosed is returned when a bid arrives for an order that is not
// open for bids: it is already assigned, terminated, or its window expired.
var ErrBiddingClosed = errors.New("order is not open for bids")

// SubmitBidCommandHandler handles bid submission.
//
// The first bid on a pending order opens the bidding window; the window
// deadline is the submission time plus the configured duration. A driver
// re-submitting for the same order updates their pending proposal in place,
// so at most one pending bid exists per (order, driver) pair.
type SubmitBidCommandHandler struct {
	uowFactory     BidUoWFactory
	windowDuration time.Duration
	publisher      EventPublisher
}

// NewSubmitBidCommandHandler creates a handler for bid submission.
// windowDuration bounds how long the order accepts bids after the first one.
func NewSubmitBidCommandHandler(
	uowFactory BidUoWFactory,
	windowDuration time.Duration,
	publisher EventPublisher,
) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory:     uowFactory,
		windowDuration: windowDuration,
		publisher:      publisher,
	}
}

// Handle processes the bid submission command.
// Returns ErrBiddingClosed when the order no longer accepts bids.
func (h SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) error {
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

	theOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch theOrder.Status() {
	case order.Pending:
		if err = theOrder.OpenBidding(now.Add(h.windowDuration)); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, theOrder); err != nil {
			return err
		}
	case order.Bidding:
		if theOrder.BiddingExpired(now) {
			return ErrBiddingClosed
		}
	default:
		return ErrBiddingClosed
	}

	theBid, err := h.upsertBid(ctx, bidRepo, cmd)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.publish(ctx, events.NewBidSubmitted(
		theOrder.ID(), theBid.ID(), theBid.DriverID(), theBid.Price()))

	return nil
}

// upsertBid updates the driver's existing pending proposal, or creates a new
// bid when the driver has none on the order.
func (h SubmitBidCommandHandler) upsertBid(
	ctx context.Context,
	bidRepo ports.BidRepository,
	cmd SubmitBidCommand,
) (*bid.Bid, error) {
	existing, err := bidRepo.GetPendingByOrderAndDriver(ctx, cmd.OrderID(), cmd.DriverID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if existing != nil {
		if err = existing.UpdateProposal(cmd.Price()); err != nil {
			return nil, err
		}
		if err = bidRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	newBid, err := bid.NewBid(cmd.BidID(), cmd.OrderID(), cmd.DriverID(), cmd.Price())
	if err != nil {
		return nil, err
	}
	if err = bidRepo.Add(ctx, newBid); err != nil {
		return nil, err
	}
	return newBid, nil
}
