package bidrepo_test

import (
	"context"
	"testing"
	"time"

	"freightline/internal/adapters/out/postgres/bidrepo"
	"freightline/internal/core/domain/model/bid"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// BidRepositoryIntegrationTestSuite provides integration tests for BidRepository
// using PostgreSQL containers to verify database persistence behavior.
type BidRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *bidrepo.GormBidRepository
	tracker    *MockAggregateTracker
}

func (suite *BidRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&bidrepo.BidDTO{}))
}

func (suite *BidRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE bids").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = bidrepo.NewGormBidRepository(suite.db, suite.tracker)
}

func (suite *BidRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BidRepositoryIntegrationTestSuite) money(amount int64) kernel.Money {
	m, err := kernel.NewMoney(amount, "ETB")
	suite.Require().NoError(err)
	return m
}

// createTestBid builds and persists a pending bid for the order and driver.
func (suite *BidRepositoryIntegrationTestSuite) createTestBid(
	orderID, driverID kernel.UUID, amount int64,
) *bid.Bid {
	b, err := bid.NewBid(kernel.NewUUID(), orderID, driverID, suite.money(amount))
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", b.ID(), b).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), b))
	return b
}

func (suite *BidRepositoryIntegrationTestSuite) updateBid(b *bid.Bid) {
	suite.tracker.On("TrackAggregate", b.ID(), b).Once()
	suite.Require().NoError(suite.repository.Update(context.Background(), b))
}

func (suite *BidRepositoryIntegrationTestSuite) statusOf(id kernel.UUID) bid.Status {
	retrieved, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	return retrieved.Status()
}

func (suite *BidRepositoryIntegrationTestSuite) TestAdd_ValidBid_RoundTrips() {
	ctx := context.Background()
	theBid := suite.createTestBid(kernel.NewUUID(), kernel.NewUUID(), 8500)

	retrieved, err := suite.repository.Get(ctx, theBid.ID())
	suite.Require().NoError(err)

	suite.Equal(theBid.ID(), retrieved.ID())
	suite.Equal(theBid.OrderID(), retrieved.OrderID())
	suite.Equal(theBid.DriverID(), retrieved.DriverID())
	suite.Equal(int64(8500), retrieved.Price().Amount())
	suite.Equal("ETB", retrieved.Price().Currency())
	suite.Equal(bid.Pending, retrieved.Status())
	suite.Zero(retrieved.CounterRounds())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *BidRepositoryIntegrationTestSuite) TestGet_NonExistentBid_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *BidRepositoryIntegrationTestSuite) TestGetPendingByOrderAndDriver_FindsOnlyPending() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	theBid := suite.createTestBid(orderID, driverID, 8500)

	found, err := suite.repository.GetPendingByOrderAndDriver(ctx, orderID, driverID)
	suite.Require().NoError(err)
	suite.Equal(theBid.ID(), found.ID())

	suite.Require().NoError(theBid.Withdraw())
	suite.updateBid(theBid)

	_, err = suite.repository.GetPendingByOrderAndDriver(ctx, orderID, driverID)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// DeclineSiblings must touch only open bids, and ReinstateSiblings must
// restore exactly the bids that bulk decline overwrote, each to the status it
// held before. A bid the customer declined earlier has no business coming
// back, and a countered bid returns to Countered, not Pending.
func (suite *BidRepositoryIntegrationTestSuite) TestDeclineAndReinstateSiblings_RestorePriorStatuses() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	winner := suite.createTestBid(orderID, kernel.NewUUID(), 9000)
	pendingSibling := suite.createTestBid(orderID, kernel.NewUUID(), 8500)

	counteredSibling := suite.createTestBid(orderID, kernel.NewUUID(), 9500)
	suite.Require().NoError(counteredSibling.Counter(suite.money(8000), suite.money(10000)))
	suite.updateBid(counteredSibling)

	customerDeclined := suite.createTestBid(orderID, kernel.NewUUID(), 7000)
	suite.Require().NoError(customerDeclined.Decline())
	suite.updateBid(customerDeclined)

	withdrawn := suite.createTestBid(orderID, kernel.NewUUID(), 7500)
	suite.Require().NoError(withdrawn.Withdraw())
	suite.updateBid(withdrawn)

	suite.Require().NoError(suite.repository.DeclineSiblings(ctx, orderID, winner.ID()))

	suite.Equal(bid.Pending, suite.statusOf(winner.ID()))
	suite.Equal(bid.Declined, suite.statusOf(pendingSibling.ID()))
	suite.Equal(bid.Declined, suite.statusOf(counteredSibling.ID()))
	suite.Equal(bid.Declined, suite.statusOf(customerDeclined.ID()))
	suite.Equal(bid.Withdrawn, suite.statusOf(withdrawn.ID()))

	suite.Require().NoError(suite.repository.ReinstateSiblings(ctx, orderID, winner.ID()))

	suite.Equal(bid.Pending, suite.statusOf(pendingSibling.ID()))
	suite.Equal(bid.Countered, suite.statusOf(counteredSibling.ID()))
	suite.Equal(bid.Declined, suite.statusOf(customerDeclined.ID()))
	suite.Equal(bid.Withdrawn, suite.statusOf(withdrawn.ID()))

	restored, err := suite.repository.Get(ctx, counteredSibling.ID())
	suite.Require().NoError(err)
	suite.Equal(1, restored.CounterRounds())
	suite.Equal(int64(8000), restored.Price().Amount())
}

// A second reinstate is a no-op: the memo is cleared by the first one, so
// nothing matches again.
func (suite *BidRepositoryIntegrationTestSuite) TestReinstateSiblings_IsIdempotent() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	winner := suite.createTestBid(orderID, kernel.NewUUID(), 9000)
	sibling := suite.createTestBid(orderID, kernel.NewUUID(), 8500)

	suite.Require().NoError(suite.repository.DeclineSiblings(ctx, orderID, winner.ID()))
	suite.Require().NoError(suite.repository.ReinstateSiblings(ctx, orderID, winner.ID()))
	suite.Equal(bid.Pending, suite.statusOf(sibling.ID()))

	// Decline individually, then reinstate again. The bid stays declined.
	declined, err := suite.repository.Get(ctx, sibling.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(declined.Decline())
	suite.updateBid(declined)

	suite.Require().NoError(suite.repository.ReinstateSiblings(ctx, orderID, winner.ID()))
	suite.Equal(bid.Declined, suite.statusOf(sibling.ID()))
}

func (suite *BidRepositoryIntegrationTestSuite) TestDeclineAllPending_ClosesOpenBidsWithoutMemo() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	pending := suite.createTestBid(orderID, kernel.NewUUID(), 8500)

	countered := suite.createTestBid(orderID, kernel.NewUUID(), 9500)
	suite.Require().NoError(countered.Counter(suite.money(8000), suite.money(10000)))
	suite.updateBid(countered)

	suite.Require().NoError(suite.repository.DeclineAllPending(ctx, orderID))

	suite.Equal(bid.Declined, suite.statusOf(pending.ID()))
	suite.Equal(bid.Declined, suite.statusOf(countered.ID()))

	// The expiry sweep records no prior status, so a reinstate cannot
	// resurrect these.
	suite.Require().NoError(suite.repository.ReinstateSiblings(ctx, orderID, kernel.NewUUID()))
	suite.Equal(bid.Declined, suite.statusOf(pending.ID()))
	suite.Equal(bid.Declined, suite.statusOf(countered.ID()))
}

func TestBidRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BidRepositoryIntegrationTestSuite))
}
