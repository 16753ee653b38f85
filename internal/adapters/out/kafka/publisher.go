// Package kafka publishes order lifecycle events to a Kafka topic.
// Messages are keyed by order id so events for the same order land on the
// same partition and keep their order.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"freightline/internal/core/domain/events"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.NotificationSink on top of a Kafka writer.
// Downstream consumers fan the events out to customers and drivers over
// push, SMS and chat channels.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// envelope is the wire form of a lifecycle event.
type envelope struct {
	Name       string         `json:"name"`
	OrderID    string         `json:"order_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// payload flattens the event-specific fields into wire-friendly primitives.
func payload(event events.Event) map[string]any {
	switch e := event.(type) {
	case events.OrderCreated:
		return map[string]any{
			"customer_id": e.CustomerID.String(),
			"base_price":  e.BasePrice.Amount(),
			"currency":    e.BasePrice.Currency(),
		}
	case events.BidSubmitted:
		return map[string]any{
			"bid_id":    e.BidID.String(),
			"driver_id": e.DriverID.String(),
			"price":     e.Price.Amount(),
			"currency":  e.Price.Currency(),
		}
	case events.BidAccepted:
		return map[string]any{
			"bid_id":    e.BidID.String(),
			"driver_id": e.DriverID.String(),
			"price":     e.Price.Amount(),
			"currency":  e.Price.Currency(),
		}
	case events.OrderCancelled:
		return map[string]any{
			"actor": e.Actor.String(),
		}
	case events.OrderDelivered:
		return map[string]any{
			"driver_id": e.DriverID.String(),
		}
	default:
		return map[string]any{}
	}
}

// Publish serializes the event and writes it to the topic, keyed by order id.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(envelope{
		Name:       event.Name(),
		OrderID:    event.OrderID().String(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload(event),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID().String()),
		Value: value,
	})
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
