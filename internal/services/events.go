package services

import (
	"context"
	"encoding/json"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/stellar/anchor-platform-sub000/internal/logger"
	"github.com/stellar/anchor-platform-sub000/internal/models"
)

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// KafkaEventPublisher publishes transaction events keyed by transaction id.
type KafkaEventPublisher struct {
	writer KafkaWriter
	clock  clock.Clock
}

// NewKafkaEventPublisher creates a publisher. A nil writer disables publishing.
func NewKafkaEventPublisher(writer KafkaWriter, clk clock.Clock) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer, clock: clk}
}

// PublishStatusChanged publishes a transaction_status_changed event. Failures are logged only.
func (p *KafkaEventPublisher) PublishStatusChanged(ctx context.Context, txn *models.Transaction) {
	if p.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.ID)
		return
	}

	event := models.AnchorEvent{
		ID:          uuid.NewString(),
		Type:        models.EventTypeTransactionStatusChanged,
		Sep:         txn.Sep,
		Timestamp:   p.clock.Now().UTC(),
		Transaction: models.NewTransactionView(txn),
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "transaction_id", txn.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.ID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "transaction_id", txn.ID, "error", err)
		return
	}
	logger.Log.Infow("Event published to Kafka", "transaction_id", txn.ID, "event_id", event.ID, "status", txn.Status)
}
