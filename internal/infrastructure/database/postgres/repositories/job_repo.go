package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// JobRepository is the PostgreSQL implementation of docking.JobRepository.
type JobRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewJobRepository constructs a ready-to-use JobRepository.
func NewJobRepository(pool *pgxpool.Pool, log logging.Logger) *JobRepository {
	return &JobRepository{pool: pool, logger: log.Named("job_repo")}
}

// Save upserts by ID.  The optimistic version column guards against two
// workers finishing the same job.
func (r *JobRepository) Save(ctx context.Context, j *docking.Job) error {
	var resultJSON []byte
	if j.Result != nil {
		var err error
		resultJSON, err = json.Marshal(j.Result)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal job result")
		}
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO docking_jobs (
			id, ligand_smiles, receptor_key, receptor_fasta, status,
			result, failure_reason, started_at, finished_at,
			created_at, updated_at, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			result = EXCLUDED.result,
			failure_reason = EXCLUDED.failure_reason,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
		WHERE docking_jobs.version < EXCLUDED.version`,
		j.ID, j.LigandSMILES, j.ReceptorKey, j.ReceptorFASTA, j.Status,
		resultJSON, j.FailureReason, j.StartedAt, j.FinishedAt,
		j.CreatedAt, j.UpdatedAt, j.Version,
	)
	if err != nil {
		r.logger.Error("save failed", logging.String("id", string(j.ID)), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save docking job")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeConflict, "stale docking job version").
			WithDetail("id=" + string(j.ID))
	}
	return nil
}

// FindByID loads one job.
func (r *JobRepository) FindByID(ctx context.Context, id common.ID) (*docking.Job, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, ligand_smiles, receptor_key, receptor_fasta, status,
		       result, failure_reason, started_at, finished_at,
		       created_at, updated_at, version
		FROM docking_jobs WHERE id = $1`, string(id))

	j, err := scanJob(row)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeJobNotFound, "docking job not found").
			WithDetail("id=" + string(id))
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load docking job")
	}
	return j, nil
}

// List returns a page ordered by creation time descending, optionally
// filtered by status.
func (r *JobRepository) List(ctx context.Context, status dtypes.JobStatus, page common.Pagination) ([]*docking.Job, int64, error) {
	where := ``
	countArgs := []any{}
	listArgs := []any{page.PageSize, page.Offset()}
	if status != "" {
		where = `WHERE status = $1`
		countArgs = append(countArgs, string(status))
		listArgs = []any{string(status), page.PageSize, page.Offset()}
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM docking_jobs `+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count docking jobs")
	}

	query := `
		SELECT id, ligand_smiles, receptor_key, receptor_fasta, status,
		       result, failure_reason, started_at, finished_at,
		       created_at, updated_at, version
		FROM docking_jobs `
	if status != "" {
		query += where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	}

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list docking jobs")
	}
	defer rows.Close()

	var out []*docking.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan job row")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "job row iteration failed")
	}
	return out, total, nil
}

func scanJob(row rowScanner) (*docking.Job, error) {
	var (
		j          docking.Job
		resultJSON []byte
	)
	if err := row.Scan(&j.ID, &j.LigandSMILES, &j.ReceptorKey, &j.ReceptorFASTA, &j.Status,
		&resultJSON, &j.FailureReason, &j.StartedAt, &j.FinishedAt,
		&j.CreatedAt, &j.UpdatedAt, &j.Version); err != nil {
		return nil, err
	}
	if len(resultJSON) > 0 {
		var result dtypes.AffinityResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, err
		}
		j.Result = &result
	}
	return &j, nil
}
