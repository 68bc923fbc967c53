// Package events publishes order domain events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/taha12-ok/comforty-order-service/internal/config"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
)

const EventOrderCreated = "order.created"

// OrderEvent is the message envelope for order domain events.
type OrderEvent struct {
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, order entities.Order) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.Kafka) *kafkaPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, order entities.Order) error {
	event := OrderEvent{
		EventType:     EventOrderCreated,
		OrderID:       order.OrderID,
		CustomerEmail: order.Customer.Email,
		Total:         order.Total.InexactFloat64(),
		Status:        string(order.Status),
		OccurredAt:    time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, entities.Order) error { return nil }

func (NoopPublisher) Close() error { return nil }
