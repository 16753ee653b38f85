package commands

import (
	"context"
	"log/slog"

	"freightline/internal/core/domain/events"
	"freightline/internal/core/ports"
)

// EventPublisher delivers lifecycle events to the notification sink.
// Delivery is best-effort: a failed publish is logged and never fails the
// state transition that produced the event.
type EventPublisher struct {
	sink   ports.NotificationSink
	logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher over the given sink.
func NewEventPublisher(sink ports.NotificationSink, logger *slog.Logger) EventPublisher {
	return EventPublisher{sink: sink, logger: logger}
}

func (p EventPublisher) publish(ctx context.Context, event events.Event) {
	if p.sink == nil {
		return
	}
	if err := p.sink.Publish(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "failed to publish lifecycle event",
			"event", event.Name(),
			"order_id", event.OrderID().String(),
			"error", err)
	}
}
