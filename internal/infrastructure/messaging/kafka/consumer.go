package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
)

// Handler processes one decoded envelope. A non-nil error leaves the message
// uncommitted so the group redelivers it.
type Handler func(ctx context.Context, envelope *EventEnvelope) error

// ReaderInterface abstracts kafka.Reader for tests.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer pulls envelopes off a topic inside a consumer group and feeds them
// to a handler.
type Consumer struct {
	reader ReaderInterface
	topic  string
	logger logging.Logger
}

// NewConsumer builds a group consumer for topic from configuration.
func NewConsumer(cfg config.KafkaConfig, topic string, logger logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.Default()
	}
	startOffset := kafka.LastOffset
	if cfg.AutoOffsetReset == "earliest" {
		startOffset = kafka.FirstOffset
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       topic,
		StartOffset: startOffset,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		MaxWait:     time.Second,
	})
	return &Consumer{reader: reader, topic: topic, logger: logger.Named("kafka.consumer")}
}

// NewConsumerWithReader injects a custom reader, used by tests.
func NewConsumerWithReader(reader ReaderInterface, topic string, logger logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Consumer{reader: reader, topic: topic, logger: logger.Named("kafka.consumer")}
}

// Run fetches and dispatches messages until ctx is cancelled. Malformed
// envelopes are committed and skipped so they cannot wedge the partition.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	c.logger.Info("consumer started", logging.String("topic", c.topic))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopped", logging.String("topic", c.topic))
				return nil
			}
			c.logger.Error("failed to fetch message", logging.Err(err))
			continue
		}

		var envelope EventEnvelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			c.logger.Warn("skipping malformed envelope",
				logging.String("topic", c.topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handler(ctx, &envelope); err != nil {
			c.logger.Error("handler failed, message left uncommitted",
				logging.String("topic", c.topic),
				logging.String("event_id", envelope.EventID),
				logging.Err(err))
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit offset",
				logging.String("topic", c.topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
		}
	}
}

// Close shuts the underlying reader down.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
