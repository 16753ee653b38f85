package cmd

import (
	"log/slog"
	"strings"
	"time"

	httpin "freightline/internal/adapters/in/http"
	"freightline/internal/adapters/out/geosvc"
	"freightline/internal/adapters/out/jwtauth"
	"freightline/internal/adapters/out/kafka"
	"freightline/internal/adapters/out/postgres"
	"freightline/internal/adapters/out/telebirr"
	"freightline/internal/core/application/usecases/commands"
	"freightline/internal/core/application/usecases/queries"
	"freightline/internal/core/domain/services"
	"freightline/internal/core/ports"
	"freightline/internal/jobs"
	"freightline/internal/pkg/keyedmutex"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const outboundTimeout = 10 * time.Second

// CompositionRoot builds every adapter and handler the application runs on.
// Handlers are cheap value types; adapters and locks are shared singletons.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	gateway   ports.PaymentGateway
	identity  ports.IdentityProvider
	locations ports.LocationProvider
	publisher commands.EventPublisher
	settler   commands.EscrowSettler
	policy    services.SettlementPolicy

	driverLocks *keyedmutex.KeyedMutex
	orderLocks  *keyedmutex.KeyedMutex

	logger *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	gateway := telebirr.NewGateway(configs.PaymentGatewayURL, configs.PaymentGatewayKey, outboundTimeout)
	sink := kafka.NewPublisher(strings.Split(configs.KafkaHost, ","), configs.KafkaEventsTopic)

	return CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:     gateway,
		identity:    jwtauth.NewProvider(configs.JWTSecret),
		locations:   geosvc.NewProvider(configs.GeoServiceURL, outboundTimeout),
		publisher:   commands.NewEventPublisher(sink, logger),
		settler:     commands.NewEscrowSettler(gateway, logger),
		policy:      services.NewSettlementPolicy(),
		driverLocks: keyedmutex.NewKeyedMutex(),
		orderLocks:  keyedmutex.NewKeyedMutex(),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.bidUoWFactory(), c.configs.BiddingWindow, c.publisher)
}

func (c *CompositionRoot) CreateCounterBidCommandHandler() commands.CounterBidCommandHandler {
	return commands.NewCounterBidCommandHandler(c.bidUoWFactory())
}

func (c *CompositionRoot) CreateDeclineBidCommandHandler() commands.DeclineBidCommandHandler {
	return commands.NewDeclineBidCommandHandler(c.bidUoWFactory())
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	return commands.NewWithdrawBidCommandHandler(c.bidUoWFactory())
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(
		c.fullUoWFactory(),
		c.gateway,
		c.policy,
		c.driverLocks,
		c.configs.AcceptCooldown,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.fullUoWFactory(), c.policy, c.settler, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.fullUoWFactory(),
		c.policy,
		c.settler,
		c.orderLocks,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateExpireBiddingWindowsCommandHandler() commands.ExpireBiddingWindowsCommandHandler {
	return commands.NewExpireBiddingWindowsCommandHandler(c.bidUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateReconcileEscrowCommandHandler() commands.ReconcileEscrowCommandHandler {
	return commands.NewReconcileEscrowCommandHandler(c.fullUoWFactory(), c.settler, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOpenOrdersQueryHandler() queries.ListOpenOrdersQueryHandler {
	return queries.NewListOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBidsForOrderQueryHandler() queries.ListBidsForOrderQueryHandler {
	return queries.NewListBidsForOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB, c.locations)
}

// CreateHTTPServer wires every endpoint handler into the REST server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateSubmitBidCommandHandler(),
		c.CreateCounterBidCommandHandler(),
		c.CreateDeclineBidCommandHandler(),
		c.CreateWithdrawBidCommandHandler(),
		c.CreateAcceptBidCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOpenOrdersQueryHandler(),
		c.CreateListBidsForOrderQueryHandler(),
		c.CreateTrackOrderQueryHandler(),
	)
}

// CreateAuthMiddleware builds the bearer token middleware over the identity provider.
func (c *CompositionRoot) CreateAuthMiddleware() echo.MiddlewareFunc {
	return httpin.AuthMiddleware(c.identity)
}

// CreateJobManager wires the background sweeps.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireBiddingWindowsCommandHandler(),
		c.CreateReconcileEscrowCommandHandler(),
		c.configs.BiddingSweepSchedule,
		c.configs.EscrowSweepSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) bidUoWFactory() commands.BidUoWFactory {
	return FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
