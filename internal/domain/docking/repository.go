package docking

import (
	"context"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// JobRepository abstracts docking-job persistence.
type JobRepository interface {
	// Save inserts a new job or updates an existing one by ID.
	Save(ctx context.Context, j *Job) error

	// FindByID loads a job.  Returns ErrCodeJobNotFound when absent.
	FindByID(ctx context.Context, id common.ID) (*Job, error)

	// List returns a page of jobs ordered by creation time descending,
	// optionally filtered by status (empty string means all).
	List(ctx context.Context, status dtypes.JobStatus, page common.Pagination) ([]*Job, int64, error)
}

// PredictionRecord is one persisted synchronous prediction, keyed by the
// deterministic input triple so that history queries and exports can replay
// what was served.
type PredictionRecord struct {
	ID            common.ID
	StructureKey  string
	LigandSMILES  string
	ReceptorKey   string
	ReceptorFASTA string
	Result        dtypes.AffinityResult
	CreatedAt     time.Time
}

// PredictionRepository abstracts prediction-history persistence.
type PredictionRepository interface {
	// Save appends a prediction record.
	Save(ctx context.Context, rec *PredictionRecord) error

	// List returns a page of records ordered by creation time descending,
	// optionally filtered by receptor key (empty string means all).
	List(ctx context.Context, receptorKey string, page common.Pagination) ([]*PredictionRecord, int64, error)
}
