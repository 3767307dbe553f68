// Package kafka publishes parcel events from the outbox to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	headerEventType   = "event-type"
	headerAggregateID = "aggregate-id"
	headerMessageID   = "message-id"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Writer is the part of kafka-go's Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes outbox messages keyed by parcel reference, so the events of
// one parcel land on one partition in order.
type Publisher struct {
	writer Writer
	logger *slog.Logger
}

// NewWriter builds a synchronous writer that waits for all in-sync replicas.
func NewWriter(brokers []string, topic string) (*kafkago.Writer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, nil
}

func NewPublisher(writer Writer, logger *slog.Logger) (*Publisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{writer: writer, logger: logger.With("component", "kafka_publisher")}, nil
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafkago.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafkago.Message{
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafkago.Header{
				{Key: headerEventType, Value: []byte(m.EventType)},
				{Key: headerAggregateID, Value: []byte(m.AggregateID.String())},
				{Key: headerMessageID, Value: []byte(m.ID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		var writeErrs kafkago.WriteErrors
		if errors.As(err, &writeErrs) {
			p.logger.WarnContext(ctx, "partial kafka write", "failed", writeErrs.Count(), "total", len(batch))
		}
		return fmt.Errorf("publish %d messages: %w", len(batch), err)
	}

	p.logger.DebugContext(ctx, "messages published", "count", len(batch))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
