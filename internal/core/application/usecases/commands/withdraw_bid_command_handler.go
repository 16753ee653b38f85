package commands

import (
	"context"
	"errors"
)

// ErrNotBidOwner is returned when the withdrawing driver does not own the bid.
var ErrNotBidOwner = errors.New("driver does not own this bid")

// WithdrawBidCommandHandler handles bid withdrawal by the driver.
// Pending and countered bids can be withdrawn; an accepted bid cannot, the
// driver has to cancel the order and forfeit the commitment fee instead.
type WithdrawBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewWithdrawBidCommandHandler creates a handler for bid withdrawal operations.
func NewWithdrawBidCommandHandler(uowFactory BidUoWFactory) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid withdrawal command.
// Returns ErrNotBidOwner when the driver does not own the bid.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, cmd WithdrawBidCommand) error {
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

	if !theBid.DriverID().IsEqual(cmd.DriverID()) {
		return ErrNotBidOwner
	}

	if err = theBid.Withdraw(); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, theBid); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
