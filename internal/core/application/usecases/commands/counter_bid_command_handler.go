package commands

import (
	"context"
	"time"

	"freightline/internal/core/domain/model/order"
)

// CounterBidCommandHandler handles customer counter-offers.
//
// A counter moves the bid to Countered and replaces its price; the driver
// responds by submitting again (a fresh proposal), withdrawing, or letting
// the bid expire with the window. The negotiation is bounded per bid.
type CounterBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewCounterBidCommandHandler creates a handler for counter-offer operations.
func NewCounterBidCommandHandler(uowFactory BidUoWFactory) CounterBidCommandHandler {
	return CounterBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the counter-offer command.
// Returns ErrNotOrderOwner when the customer does not own the order and
// ErrBiddingClosed when the order no longer accepts negotiation.
func (h CounterBidCommandHandler) Handle(ctx context.Context, cmd CounterBidCommand) error {
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

	bidRepo := uow.BidRepository()

	theBid, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	theOrder, err := uow.OrderRepository().Get(ctx, theBid.OrderID())
	if err != nil {
		return err
	}

	if !theOrder.CustomerID().IsEqual(cmd.CustomerID()) {
		return ErrNotOrderOwner
	}
	if theOrder.Status() != order.Bidding || theOrder.BiddingExpired(time.Now().UTC()) {
		return ErrBiddingClosed
	}

	if err = theBid.Counter(cmd.NewPrice(), theOrder.AskingPrice()); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, theBid); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
