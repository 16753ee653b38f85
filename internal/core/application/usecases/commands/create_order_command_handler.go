package commands

import (
	"context"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for posting orders.
// New orders start in Pending status and become visible to drivers immediately.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(orderID, customerID, pickup, destination,
//	    "furniture", order.TruckClassLight, basePrice, scheduledAt)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now posted and open for bids
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order posting operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Creates the order in Pending status and announces it to the notification sink.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.Pickup(),
		cmd.Destination(),
		cmd.CargoDescription(),
		cmd.TruckClass(),
		cmd.BasePrice(),
		cmd.ScheduledAt(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.publish(ctx, events.NewOrderCreated(
		newOrder.ID(), newOrder.CustomerID(), newOrder.BasePrice()))

	return nil
}
