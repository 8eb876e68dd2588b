// Package kafka provides the event envelope, topic registry, producer, and
// consumer for the docking job pipeline.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

// Topic constants.
const (
	TopicJobSubmitted = "docking.submitted"
	TopicJobCompleted = "docking.completed"
	TopicJobFailed    = "docking.failed"

	TopicLigandRegistered = "ligand.registered"

	TopicDeadLetter = "dead_letter.docking"
)

// schemaVersion is bumped whenever a payload struct changes incompatibly.
const schemaVersion = "1.0"

// EventEnvelope standardises every message on the bus.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	TraceID       string          `json:"trace_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload struct into a ready-to-publish envelope.
func NewEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into dest.
func (e *EventEnvelope) DecodePayload(dest interface{}) error {
	if err := json.Unmarshal(e.Payload, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event payload")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Payload structs
// ─────────────────────────────────────────────────────────────────────────────

// JobSubmittedPayload announces a new pending docking job for the workers.
type JobSubmittedPayload struct {
	JobID         string    `json:"job_id"`
	LigandSMILES  string    `json:"ligand_smiles"`
	ReceptorKey   string    `json:"receptor_key"`
	ReceptorFASTA string    `json:"receptor_fasta,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// JobCompletedPayload announces a finished job with its headline numbers.
type JobCompletedPayload struct {
	JobID       string    `json:"job_id"`
	ReceptorKey string    `json:"receptor_key"`
	PKd         float64   `json:"pkd"`
	Confidence  int       `json:"confidence"`
	FinishedAt  time.Time `json:"finished_at"`
}

// JobFailedPayload announces a job the worker gave up on.
type JobFailedPayload struct {
	JobID    string    `json:"job_id"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

// LigandRegisteredPayload announces a freshly indexed ligand.
type LigandRegisteredPayload struct {
	LigandID     string    `json:"ligand_id"`
	StructureKey string    `json:"structure_key"`
	RegisteredAt time.Time `json:"registered_at"`
}
