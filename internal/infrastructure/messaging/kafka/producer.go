package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// WriterInterface abstracts kafka.Writer so the producer is testable without
// a broker.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerMetrics tracks publish outcomes with atomic counters.
type ProducerMetrics struct {
	Published int64
	Failed    int64
}

// Producer publishes event envelopes to Kafka.
type Producer struct {
	writer  WriterInterface
	source  string
	logger  logging.Logger
	metrics ProducerMetrics

	mu     sync.Mutex
	closed bool
}

// NewProducer builds a producer from configuration. Source names the
// publishing component ("apiserver", "worker") and lands in every envelope.
func NewProducer(cfg config.KafkaConfig, source string, logger logging.Logger) *Producer {
	if logger == nil {
		logger = logging.Default()
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		MaxAttempts:  cfg.ProducerRetries + 1,
		RequiredAcks: kafka.RequireAll,
	}
	return &Producer{writer: writer, source: source, logger: logger.Named("kafka.producer")}
}

// NewProducerWithWriter injects a custom writer, used by tests.
func NewProducerWithWriter(writer WriterInterface, source string, logger logging.Logger) *Producer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Producer{writer: writer, source: source, logger: logger.Named("kafka.producer")}
}

// Publish wraps the payload in an envelope and writes it to topic, keyed for
// per-key ordering.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New(errors.ErrCodeServiceUnavailable, "kafka producer is closed")
	}
	p.mu.Unlock()

	envelope, err := NewEnvelope(topic, p.source, payload)
	if err != nil {
		return err
	}
	if traceID, ok := ctx.Value(common.ContextKeyRequestID).(string); ok {
		envelope.TraceID = traceID
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal event envelope")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		atomic.AddInt64(&p.metrics.Failed, 1)
		p.logger.Error("failed to publish event",
			logging.String("topic", topic),
			logging.String("key", key),
			logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeMessageQueueError, "failed to publish event")
	}

	atomic.AddInt64(&p.metrics.Published, 1)
	p.logger.Debug("event published",
		logging.String("topic", topic),
		logging.String("event_id", envelope.EventID))
	return nil
}

// Metrics returns a snapshot of the publish counters.
func (p *Producer) Metrics() ProducerMetrics {
	return ProducerMetrics{
		Published: atomic.LoadInt64(&p.metrics.Published),
		Failed:    atomic.LoadInt64(&p.metrics.Failed),
	}
}

// Close flushes buffered messages and shuts the writer down.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
