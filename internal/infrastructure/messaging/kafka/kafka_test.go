package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	segkafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

type capturingWriter struct {
	messages []segkafka.Message
	err      error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...segkafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *capturingWriter) Close() error { return nil }

func TestProducer_PublishWrapsEnvelope(t *testing.T) {
	writer := &capturingWriter{}
	producer := NewProducerWithWriter(writer, "apiserver", nil)

	payload := JobSubmittedPayload{
		JobID:        "job-1",
		LigandSMILES: "CCO",
		ReceptorKey:  "il-6",
		SubmittedAt:  time.Now().UTC(),
	}
	err := producer.Publish(context.Background(), TopicJobSubmitted, "job-1", payload)
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, TopicJobSubmitted, msg.Topic)
	assert.Equal(t, []byte("job-1"), msg.Key)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, TopicJobSubmitted, envelope.EventType)
	assert.Equal(t, "apiserver", envelope.Source)
	assert.NotEmpty(t, envelope.EventID)

	var decoded JobSubmittedPayload
	require.NoError(t, envelope.DecodePayload(&decoded))
	assert.Equal(t, "CCO", decoded.LigandSMILES)
	assert.Equal(t, "il-6", decoded.ReceptorKey)
}

func TestProducer_PublishWriteError(t *testing.T) {
	writer := &capturingWriter{err: errors.New("broker down")}
	producer := NewProducerWithWriter(writer, "apiserver", nil)

	err := producer.Publish(context.Background(), TopicJobFailed, "job-2", JobFailedPayload{JobID: "job-2"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMessageQueueError, apperrors.GetCode(err))
	assert.Equal(t, int64(1), producer.Metrics().Failed)
}

func TestProducer_ClosedRejectsPublish(t *testing.T) {
	producer := NewProducerWithWriter(&capturingWriter{}, "apiserver", nil)
	require.NoError(t, producer.Close())
	require.NoError(t, producer.Close()) // idempotent

	err := producer.Publish(context.Background(), TopicJobSubmitted, "k", JobSubmittedPayload{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeServiceUnavailable, apperrors.GetCode(err))
}

type scriptedReader struct {
	messages  []segkafka.Message
	committed []int64
	drained   func() // invoked once the script is exhausted
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (segkafka.Message, error) {
	if len(r.messages) == 0 {
		if r.drained != nil {
			r.drained()
		}
		<-ctx.Done()
		return segkafka.Message{}, io.EOF
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...segkafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *scriptedReader) Close() error { return nil }

func envelopeMessage(t *testing.T, offset int64, payload interface{}) segkafka.Message {
	t.Helper()
	envelope, err := NewEnvelope(TopicJobSubmitted, "test", payload)
	require.NoError(t, err)
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	return segkafka.Message{Topic: TopicJobSubmitted, Offset: offset, Value: data}
}

func TestConsumer_RunDispatchesAndCommits(t *testing.T) {
	reader := &scriptedReader{messages: []segkafka.Message{
		envelopeMessage(t, 10, JobSubmittedPayload{JobID: "job-a"}),
		{Topic: TopicJobSubmitted, Offset: 11, Value: []byte("not json")},
		envelopeMessage(t, 12, JobSubmittedPayload{JobID: "job-b"}),
	}}
	consumer := NewConsumerWithReader(reader, TopicJobSubmitted, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader.drained = cancel

	var seen []string
	err := consumer.Run(ctx, func(_ context.Context, envelope *EventEnvelope) error {
		var p JobSubmittedPayload
		if err := envelope.DecodePayload(&p); err != nil {
			return err
		}
		seen = append(seen, p.JobID)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"job-a", "job-b"}, seen)
	// The malformed message at offset 11 is committed without dispatch.
	assert.Equal(t, []int64{10, 11, 12}, reader.committed)
}

func TestConsumer_HandlerErrorLeavesUncommitted(t *testing.T) {
	reader := &scriptedReader{messages: []segkafka.Message{
		envelopeMessage(t, 5, JobSubmittedPayload{JobID: "job-x"}),
	}}
	consumer := NewConsumerWithReader(reader, TopicJobSubmitted, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := consumer.Run(ctx, func(_ context.Context, _ *EventEnvelope) error {
		return errors.New("transient")
	})
	require.NoError(t, err)
	assert.Empty(t, reader.committed)
}
