package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"freightline/internal/core/application/usecases/commands"
	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/escrow"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"
	"freightline/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AssignIfUnassigned(
	ctx context.Context,
	orderID, driverID, bidID kernel.UUID,
	finalPrice kernel.Money,
) error {
	args := m.Called(ctx, orderID, driverID, bidID, finalPrice)
	return args.Error(0)
}

func (m *MockOrderRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetExpiredForBidding(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetPendingByOrderAndDriver(
	ctx context.Context,
	orderID, driverID kernel.UUID,
) (*bid.Bid, error) {
	args := m.Called(ctx, orderID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) DeclineSiblings(ctx context.Context, orderID, winnerBidID kernel.UUID) error {
	args := m.Called(ctx, orderID, winnerBidID)
	return args.Error(0)
}

func (m *MockBidRepository) ReinstateSiblings(ctx context.Context, orderID, winnerBidID kernel.UUID) error {
	args := m.Called(ctx, orderID, winnerBidID)
	return args.Error(0)
}

func (m *MockBidRepository) DeclineAllPending(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockEscrowRepository struct{ mock.Mock }

func (m *MockEscrowRepository) Add(ctx context.Context, e *escrow.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEscrowRepository) Update(ctx context.Context, e *escrow.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEscrowRepository) Get(ctx context.Context, id kernel.UUID) (*escrow.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Entry), args.Error(1)
}

func (m *MockEscrowRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*escrow.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*escrow.Entry), args.Error(1)
}

func (m *MockEscrowRepository) GetByOrderAndKind(
	ctx context.Context,
	orderID kernel.UUID,
	kind escrow.Kind,
) (*escrow.Entry, error) {
	args := m.Called(ctx, orderID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Entry), args.Error(1)
}

func (m *MockEscrowRepository) GetAllFailed(ctx context.Context) ([]*escrow.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*escrow.Entry), args.Error(1)
}

// MockUoW implements every unit of work shape the handlers use, so one mock
// type serves order-only, bid and cross-ledger transactions.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BidRepository() ports.BidRepository {
	args := m.Called()
	return args.Get(0).(ports.BidRepository)
}

func (m *MockUoW) EscrowRepository() ports.EscrowRepository {
	args := m.Called()
	return args.Get(0).(ports.EscrowRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBidUoWFactory struct{ mock.Mock }

func (m *MockBidUoWFactory) Create() commands.BidUoW {
	args := m.Called()
	return args.Get(0).(commands.BidUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Authorize(ctx context.Context, referenceID string, amount kernel.Money) (string, error) {
	args := m.Called(ctx, referenceID, amount)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Capture(ctx context.Context, gatewayRef string, amount kernel.Money) (string, error) {
	args := m.Called(ctx, gatewayRef, amount)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, gatewayRef string, amount kernel.Money) (string, error) {
	args := m.Called(ctx, gatewayRef, amount)
	return args.String(0), args.Error(1)
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func silentPublisher() commands.EventPublisher {
	return commands.NewEventPublisher(nil, testLogger())
}

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()

	m, err := kernel.NewMoney(amount, "ETB")
	require.NoError(t, err)
	return m
}

// pendingOrder builds an order in Pending owned by customerID with a base
// price of 10000.
func pendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	pickup, err := kernel.NewAddress("Bole Road, Addis Ababa")
	require.NoError(t, err)
	destination, err := kernel.NewAddress("Hawassa Industrial Park")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID,
		pickup, destination,
		"20 pallets of bottled water",
		order.TruckClassMedium,
		money(t, 10000),
		time.Now().UTC().Add(24*time.Hour),
	)
	require.NoError(t, err)
	return o
}

// biddingOrder builds an order in Bidding whose window closes an hour from now.
func biddingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	o := pendingOrder(t, customerID)
	require.NoError(t, o.OpenBidding(time.Now().UTC().Add(time.Hour)))
	return o
}

// pendingBidFor builds a pending 9000 bid by driverID on the order.
func pendingBidFor(t *testing.T, o *order.Order, driverID kernel.UUID) *bid.Bid {
	t.Helper()

	b, err := bid.NewBid(kernel.NewUUID(), o.ID(), driverID, money(t, 9000))
	require.NoError(t, err)
	return b
}

// heldEntryFor builds a held escrow entry on the order.
func heldEntryFor(
	t *testing.T,
	orderID kernel.UUID,
	payer escrow.PayerRole,
	kind escrow.Kind,
	amount int64,
	gatewayRef string,
) *escrow.Entry {
	t.Helper()

	e, err := escrow.NewEntry(kernel.NewUUID(), orderID, payer, kind, money(t, amount), gatewayRef)
	require.NoError(t, err)
	return e
}
