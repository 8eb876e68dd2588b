// Package docking defines the docking-domain Data Transfer Objects,
// enumerations, and request/response structures shared by every layer of the
// DeepDock affinity service.
package docking

import (
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ligandtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// ─────────────────────────────────────────────────────────────────────────────
// InteractionType — predicted ligand-receptor contact classification
// ─────────────────────────────────────────────────────────────────────────────

// InteractionType classifies a predicted ligand-receptor contact.
type InteractionType string

const (
	InteractionHydrogenBond  InteractionType = "hydrogen_bond"
	InteractionHydrophobic   InteractionType = "hydrophobic"
	InteractionElectrostatic InteractionType = "electrostatic"
	InteractionPiStacking    InteractionType = "pi_stacking"
	InteractionVanDerWaals   InteractionType = "van_der_waals"
)

// InteractionTypes lists all interaction classifications in generation order.
// The predictor cycles through this slice when building interaction records,
// so the order is part of the deterministic output contract.
var InteractionTypes = []InteractionType{
	InteractionHydrogenBond,
	InteractionHydrophobic,
	InteractionElectrostatic,
	InteractionPiStacking,
	InteractionVanDerWaals,
}

// Interaction is one predicted ligand-receptor contact.
type Interaction struct {
	// Type classifies the contact.
	Type InteractionType `json:"type"`

	// Residue is the receptor residue label in three-letter-code-plus-number
	// form, e.g. "ARG182".
	Residue string `json:"residue"`

	// Distance is the predicted contact distance in Å, within [1.5, 4.5].
	Distance float64 `json:"distance"`

	// Strength is the relative contact strength in [0, 1).
	Strength float64 `json:"strength"`
}

// ─────────────────────────────────────────────────────────────────────────────
// AffinityResult — the full prediction payload
// ─────────────────────────────────────────────────────────────────────────────

// AffinityResult is the complete output of one affinity prediction.  For a
// fixed (SMILES, receptor key, FASTA) input triple the result is bit-identical
// across calls, processes, and hosts.
type AffinityResult struct {
	// PKd is the predicted binding affinity as pKd, within [1.30, 9.47].
	// Larger values indicate stronger predicted binding.
	PKd float64 `json:"pkd"`

	// KdNanomolar is the dissociation constant implied by PKd, in nM.
	KdNanomolar float64 `json:"kd_nanomolar"`

	// Confidence is an integer confidence score in [70, 95].
	Confidence int `json:"confidence"`

	// Descriptors is the estimated descriptor set for the ligand input.
	Descriptors ligandtypes.DescriptorSet `json:"descriptors"`

	// Interactions lists 3 to 6 predicted contacts.
	Interactions []Interaction `json:"interactions"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Job lifecycle
// ─────────────────────────────────────────────────────────────────────────────

// JobStatus is the lifecycle state of an asynchronous docking job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// JobDTO is the cross-layer representation of a docking job.
type JobDTO struct {
	common.BaseEntity

	// LigandSMILES is the ligand input exactly as submitted (trimmed).
	LigandSMILES string `json:"ligand_smiles"`

	// ReceptorKey identifies the target: a predefined registry key or "custom".
	ReceptorKey string `json:"receptor_key"`

	// ReceptorFASTA is the custom receptor sequence; empty for predefined keys.
	ReceptorFASTA string `json:"receptor_fasta,omitempty"`

	// Status is the current lifecycle state.
	Status JobStatus `json:"status"`

	// Result is populated once Status is JobCompleted.
	Result *AffinityResult `json:"result,omitempty"`

	// FailureReason is populated once Status is JobFailed.
	FailureReason string `json:"failure_reason,omitempty"`

	// StartedAt and FinishedAt bracket the worker execution window.
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Request / response types
// ─────────────────────────────────────────────────────────────────────────────

// PredictRequest is the input DTO for both synchronous prediction and
// asynchronous job submission.
type PredictRequest struct {
	// LigandSMILES is the ligand structure.
	LigandSMILES string `json:"ligand_smiles" binding:"required"`

	// ReceptorKey is a predefined registry key (e.g. "il-6") or "custom".
	ReceptorKey string `json:"receptor_key" binding:"required"`

	// ReceptorFASTA supplies the sequence when ReceptorKey is "custom".
	ReceptorFASTA string `json:"receptor_fasta,omitempty"`
}

// PredictResponse is the output DTO for synchronous prediction.
type PredictResponse struct {
	LigandSMILES string         `json:"ligand_smiles"`
	ReceptorKey  string         `json:"receptor_key"`
	Result       AffinityResult `json:"result"`

	// Cached reports whether the result was served from the prediction cache.
	Cached bool `json:"cached"`
}

// SubmitResponse is the output DTO for asynchronous job submission.
type SubmitResponse struct {
	JobID  common.ID `json:"job_id"`
	Status JobStatus `json:"status"`
}

// JobListResponse is the paginated output DTO for job listing.
type JobListResponse = common.PageResponse[JobDTO]

// HistoryEntry is one persisted prediction in the history listing.
type HistoryEntry struct {
	ID           common.ID      `json:"id"`
	StructureKey string         `json:"structure_key"`
	LigandSMILES string         `json:"ligand_smiles"`
	ReceptorKey  string         `json:"receptor_key"`
	Result       AffinityResult `json:"result"`
	CreatedAt    time.Time      `json:"created_at"`
}

// HistoryResponse is the paginated output DTO for prediction history.
type HistoryResponse = common.PageResponse[HistoryEntry]
