package commands_test

import (
	"testing"

	"freightline/internal/core/application/usecases/commands"
	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeclineBidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	theOrder := biddingOrder(t, customerID)
	theBid := pendingBidFor(t, theOrder, kernel.NewUUID())
	cmd, err := commands.NewDeclineBidCommand(theBid.ID(), customerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", ctx, theBid.ID()).Return(theBid, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, theOrder.ID()).Return(theOrder, nil).Once(),
		bidRepo.On("Update", ctx, theBid).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeclineBidCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, bid.Declined, theBid.Status())
	bidRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeclineBidCommandHandler_Handle_NotOrderOwner(t *testing.T) {
	ctx := t.Context()
	theOrder := biddingOrder(t, kernel.NewUUID())
	theBid := pendingBidFor(t, theOrder, kernel.NewUUID())
	cmd, err := commands.NewDeclineBidCommand(theBid.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", ctx, theBid.ID()).Return(theBid, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, theOrder.ID()).Return(theOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeclineBidCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNotOrderOwner)
	assert.Equal(t, bid.Pending, theBid.Status())
}
