// Package docking provides the DockingJob aggregate and the repositories for
// jobs and persisted predictions.  A job moves pending → running →
// completed/failed; transitions out of a terminal state are rejected.
package docking

import (
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// DomainEvent is a marker interface for docking-related domain events.
type DomainEvent interface {
	EventType() string
}

// JobSubmittedEvent is published when a job is accepted for async processing.
type JobSubmittedEvent struct {
	JobID       common.ID
	ReceptorKey string
}

func (e JobSubmittedEvent) EventType() string { return "docking.job_submitted" }

// JobCompletedEvent is published when a worker finishes a job successfully.
type JobCompletedEvent struct {
	JobID common.ID
	PKd   float64
}

func (e JobCompletedEvent) EventType() string { return "docking.job_completed" }

// JobFailedEvent is published when a worker gives up on a job.
type JobFailedEvent struct {
	JobID  common.ID
	Reason string
}

func (e JobFailedEvent) EventType() string { return "docking.job_failed" }

// ─────────────────────────────────────────────────────────────────────────────
// DockingJob Aggregate Root
// ─────────────────────────────────────────────────────────────────────────────

// Job is the aggregate root for one asynchronous docking request.
type Job struct {
	common.BaseEntity

	LigandSMILES  string `json:"ligand_smiles"`
	ReceptorKey   string `json:"receptor_key"`
	ReceptorFASTA string `json:"receptor_fasta,omitempty"`

	Status dtypes.JobStatus `json:"status"`

	Result        *dtypes.AffinityResult `json:"result,omitempty"`
	FailureReason string                 `json:"failure_reason,omitempty"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	events []DomainEvent
}

// NewJob constructs a pending job for validated inputs.
func NewJob(ligandSMILES, receptorKey, receptorFASTA string) *Job {
	now := time.Now().UTC()
	j := &Job{
		BaseEntity: common.BaseEntity{
			ID:        common.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
		LigandSMILES:  ligandSMILES,
		ReceptorKey:   receptorKey,
		ReceptorFASTA: receptorFASTA,
		Status:        dtypes.JobPending,
	}
	j.events = append(j.events, JobSubmittedEvent{JobID: j.ID, ReceptorKey: receptorKey})
	return j
}

// Start transitions pending → running.
func (j *Job) Start() error {
	if j.Status != dtypes.JobPending {
		return errors.New(errors.ErrCodeJobStateInvalid, "job can only start from pending").
			WithDetail("status=" + string(j.Status))
	}
	now := time.Now().UTC()
	j.Status = dtypes.JobRunning
	j.StartedAt = &now
	j.touch(now)
	return nil
}

// Complete transitions running → completed with the prediction result.
func (j *Job) Complete(result dtypes.AffinityResult) error {
	if j.Status != dtypes.JobRunning {
		return errors.New(errors.ErrCodeJobStateInvalid, "job can only complete from running").
			WithDetail("status=" + string(j.Status))
	}
	now := time.Now().UTC()
	j.Status = dtypes.JobCompleted
	j.Result = &result
	j.FinishedAt = &now
	j.touch(now)
	j.events = append(j.events, JobCompletedEvent{JobID: j.ID, PKd: result.PKd})
	return nil
}

// Fail transitions pending or running → failed with a reason.
func (j *Job) Fail(reason string) error {
	if j.Status == dtypes.JobCompleted || j.Status == dtypes.JobFailed {
		return errors.New(errors.ErrCodeJobStateInvalid, "job already finished").
			WithDetail("status=" + string(j.Status))
	}
	now := time.Now().UTC()
	j.Status = dtypes.JobFailed
	j.FailureReason = reason
	j.FinishedAt = &now
	j.touch(now)
	j.events = append(j.events, JobFailedEvent{JobID: j.ID, Reason: reason})
	return nil
}

func (j *Job) touch(now time.Time) {
	j.UpdatedAt = now
	j.Version++
}

// Events returns pending domain events.
func (j *Job) Events() []DomainEvent { return j.events }

// ClearEvents discards pending domain events after publishing.
func (j *Job) ClearEvents() { j.events = nil }

// DTO converts the aggregate to its transport representation.
func (j *Job) DTO() dtypes.JobDTO {
	return dtypes.JobDTO{
		BaseEntity:    j.BaseEntity,
		LigandSMILES:  j.LigandSMILES,
		ReceptorKey:   j.ReceptorKey,
		ReceptorFASTA: j.ReceptorFASTA,
		Status:        j.Status,
		Result:        j.Result,
		FailureReason: j.FailureReason,
		StartedAt:     j.StartedAt,
		FinishedAt:    j.FinishedAt,
	}
}
