// Package http exposes the marketplace operations over a REST API.
// Handlers translate requests into commands and queries; all business rules
// live in the application and domain layers.
package http

import (
	"net/http"

	"freightline/internal/core/application/usecases/commands"
	"freightline/internal/core/application/usecases/queries"
	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/domain/model/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server wires HTTP endpoints to the application's command and query handlers.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	submitBidHandler    commands.SubmitBidCommandHandler
	counterBidHandler   commands.CounterBidCommandHandler
	declineBidHandler   commands.DeclineBidCommandHandler
	withdrawBidHandler  commands.WithdrawBidCommandHandler
	acceptBidHandler    commands.AcceptBidCommandHandler
	advanceOrderHandler commands.AdvanceOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	getOrderHandler     queries.GetOrderQueryHandler
	listOpenOrders      queries.ListOpenOrdersQueryHandler
	listBidsForOrder    queries.ListBidsForOrderQueryHandler
	trackOrderHandler   queries.TrackOrderQueryHandler

	validate *validator.Validate
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	submitBidHandler commands.SubmitBidCommandHandler,
	counterBidHandler commands.CounterBidCommandHandler,
	declineBidHandler commands.DeclineBidCommandHandler,
	withdrawBidHandler commands.WithdrawBidCommandHandler,
	acceptBidHandler commands.AcceptBidCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOpenOrders queries.ListOpenOrdersQueryHandler,
	listBidsForOrder queries.ListBidsForOrderQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		submitBidHandler:    submitBidHandler,
		counterBidHandler:   counterBidHandler,
		declineBidHandler:   declineBidHandler,
		withdrawBidHandler:  withdrawBidHandler,
		acceptBidHandler:    acceptBidHandler,
		advanceOrderHandler: advanceOrderHandler,
		cancelOrderHandler:  cancelOrderHandler,
		getOrderHandler:     getOrderHandler,
		listOpenOrders:      listOpenOrders,
		listBidsForOrder:    listBidsForOrder,
		trackOrderHandler:   trackOrderHandler,
		validate:            validator.New(),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
// Every route requires an authenticated actor.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.ListOpenOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/orders/:orderID/track", s.TrackOrder)
	api.POST("/orders/:orderID/advance", s.AdvanceOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)

	api.POST("/orders/:orderID/bids", s.SubmitBid)
	api.GET("/orders/:orderID/bids", s.ListBids)
	api.POST("/bids/:bidID/accept", s.AcceptBid)
	api.POST("/bids/:bidID/counter", s.CounterBid)
	api.POST("/bids/:bidID/decline", s.DeclineBid)
	api.POST("/bids/:bidID/withdraw", s.WithdrawBid)
}

// CreateOrder handles POST /api/v1/orders. The authenticated actor becomes
// the order's customer.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return writeBadRequest(c, err.Error())
	}

	pickup, err := kernel.NewAddress(req.Pickup)
	if err != nil {
		return writeError(c, err)
	}
	destination, err := kernel.NewAddress(req.Destination)
	if err != nil {
		return writeError(c, err)
	}
	truckClass, err := order.TruckClassFromString(req.TruckClass)
	if err != nil {
		return writeBadRequest(c, "Unknown truck class: "+req.TruckClass)
	}
	basePrice, err := requestMoney(req.BasePrice, req.Currency)
	if err != nil {
		return writeError(c, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor.ID,
		pickup, destination,
		req.CargoDescription,
		truckClass,
		basePrice,
		req.ScheduledAt,
	)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.createOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return writeBadRequest(c, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(result))
}

// ListOpenOrders handles GET /api/v1/orders/open. Drivers use it to find
// orders still taking bids.
func (s *Server) ListOpenOrders(c echo.Context) error {
	results, err := s.listOpenOrders.Handle(c.Request().Context(), queries.NewListOpenOrdersQuery())
	if err != nil {
		return writeError(c, err)
	}

	response := make([]orderResponse, len(results))
	for i, result := range results {
		response[i] = toOrderResponse(result)
	}

	return c.JSON(http.StatusOK, response)
}

// TrackOrder handles GET /api/v1/orders/:orderID/track.
func (s *Server) TrackOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return writeBadRequest(c, "Invalid order id")
	}

	query, err := queries.NewTrackOrderQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.trackOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, trackResponse{
		OrderID:   result.OrderID.String(),
		DriverID:  result.DriverID.String(),
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
	})
}

// SubmitBid handles POST /api/v1/orders/:orderID/bids. The authenticated
// actor becomes the bidding driver; re-bidding replaces the driver's open
// proposal on the order.
func (s *Server) SubmitBid(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return writeBadRequest(c, "Invalid order id")
	}

	var req submitBidRequest
	if err = c.Bind(&req); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return writeBadRequest(c, err.Error())
	}

	price, err := requestMoney(req.Price, req.Currency)
	if err != nil {
		return writeError(c, err)
	}

	bidID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBidCommand(bidID, orderID, actor.ID, price)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.submitBidHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: bidID.String()})
}

// ListBids handles GET /api/v1/orders/:orderID/bids.
func (s *Server) ListBids(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return writeBadRequest(c, "Invalid order id")
	}

	query, err := queries.NewListBidsForOrderQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	results, err := s.listBidsForOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]bidResponse, len(results))
	for i, result := range results {
		response[i] = toBidResponse(result)
	}

	return c.JSON(http.StatusOK, response)
}

// AcceptBid handles POST /api/v1/bids/:bidID/accept.
func (s *Server) AcceptBid(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	bidID, err := kernel.UUIDFromString(c.Param("bidID"))
	if err != nil {
		return writeBadRequest(c, "Invalid bid id")
	}

	cmd, err := commands.NewAcceptBidCommand(bidID, actor.ID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.acceptBidHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CounterBid handles POST /api/v1/bids/:bidID/counter.
func (s *Server) CounterBid(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	bidID, err := kernel.UUIDFromString(c.Param("bidID"))
	if err != nil {
		return writeBadRequest(c, "Invalid bid id")
	}

	var req counterBidRequest
	if err = c.Bind(&req); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return writeBadRequest(c, err.Error())
	}

	price, err := requestMoney(req.Price, req.Currency)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCounterBidCommand(bidID, actor.ID, price)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.counterBidHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeclineBid handles POST /api/v1/bids/:bidID/decline.
func (s *Server) DeclineBid(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	bidID, err := kernel.UUIDFromString(c.Param("bidID"))
	if err != nil {
		return writeBadRequest(c, "Invalid bid id")
	}

	cmd, err := commands.NewDeclineBidCommand(bidID, actor.ID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.declineBidHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// WithdrawBid handles POST /api/v1/bids/:bidID/withdraw.
func (s *Server) WithdrawBid(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	bidID, err := kernel.UUIDFromString(c.Param("bidID"))
	if err != nil {
		return writeBadRequest(c, "Invalid bid id")
	}

	cmd, err := commands.NewWithdrawBidCommand(bidID, actor.ID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.withdrawBidHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:orderID/advance. The assigned
// driver reports pickup, transit and delivery.
func (s *Server) AdvanceOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return writeBadRequest(c, "Invalid order id")
	}

	var req advanceOrderRequest
	if err = c.Bind(&req); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return writeBadRequest(c, err.Error())
	}

	var stage order.Status
	switch req.Stage {
	case "Pickup":
		stage = order.Pickup
	case "InTransit":
		stage = order.InTransit
	case "Delivered":
		stage = order.Delivered
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, actor.ID, stage)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.advanceOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel. The actor's role
// from the credential decides the settlement outcome.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return writeBadRequest(c, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor.ID, actor.Role)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.cancelOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// requestMoney builds a price from request fields, defaulting the currency.
func requestMoney(amount int64, currency string) (kernel.Money, error) {
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	return kernel.NewMoney(amount, currency)
}
