package commands

import (
	"context"
)

// DeclineBidCommandHandler handles explicit bid rejection by the customer.
// Declining one bid leaves the order and its other bids untouched.
type DeclineBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewDeclineBidCommandHandler creates a handler for bid rejection operations.
func NewDeclineBidCommandHandler(uowFactory BidUoWFactory) DeclineBidCommandHandler {
	return DeclineBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid rejection command.
// Returns ErrNotOrderOwner when the customer does not own the order.
func (h DeclineBidCommandHandler) Handle(ctx context.Context, cmd DeclineBidCommand) error {
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

	if err = theBid.Decline(); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, theBid); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
