package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Mr-randomize/ecommerce-go/internal/checkout"
)

const topicOrderCompleted = "order-completed"

// Publisher emits order completion events to Kafka. Publication is fire and
// forget: a broker problem is logged and never surfaces into the checkout
// result.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topicOrderCompleted,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

type orderCompletedEvent struct {
	EventID             string             `json:"eventId"`
	OrderTrackingNumber string             `json:"orderTrackingNumber"`
	Purchase            *checkout.Purchase `json:"purchase"`
	CompletedAt         time.Time          `json:"completedAt"`
}

// OrderCompleted publishes asynchronously with its own timeout, so a slow
// broker cannot stall the caller.
func (p *Publisher) OrderCompleted(purchase *checkout.Purchase, trackingNumber string) {
	event := orderCompletedEvent{
		EventID:             uuid.NewString(),
		OrderTrackingNumber: trackingNumber,
		Purchase:            purchase,
		CompletedAt:         time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal order completed event",
			slog.String("tracking_number", trackingNumber), slog.Any("error", err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		msg := kafka.Message{
			Key:   []byte(trackingNumber), // tracking number for ordering
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte("order.completed")},
			},
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			slog.Error("failed to publish order completed event",
				slog.String("event_id", event.EventID),
				slog.String("tracking_number", trackingNumber),
				slog.Any("error", err))
		}
	}()
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
