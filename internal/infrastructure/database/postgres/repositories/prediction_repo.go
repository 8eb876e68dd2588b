package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// PredictionRepository is the PostgreSQL implementation of
// docking.PredictionRepository.  Records are append-only.
type PredictionRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPredictionRepository constructs a ready-to-use PredictionRepository.
func NewPredictionRepository(pool *pgxpool.Pool, log logging.Logger) *PredictionRepository {
	return &PredictionRepository{pool: pool, logger: log.Named("prediction_repo")}
}

// Save appends one prediction record.
func (r *PredictionRepository) Save(ctx context.Context, rec *docking.PredictionRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal prediction result")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO predictions (
			id, structure_key, ligand_smiles, receptor_key, receptor_fasta,
			result, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.StructureKey, rec.LigandSMILES, rec.ReceptorKey, rec.ReceptorFASTA,
		resultJSON, rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("save failed", logging.String("id", string(rec.ID)), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save prediction")
	}
	return nil
}

// List returns a page ordered by creation time descending, optionally
// filtered by receptor key.
func (r *PredictionRepository) List(ctx context.Context, receptorKey string, page common.Pagination) ([]*docking.PredictionRecord, int64, error) {
	where := ``
	countArgs := []any{}
	listArgs := []any{page.PageSize, page.Offset()}
	if receptorKey != "" {
		where = `WHERE receptor_key = $1`
		countArgs = append(countArgs, receptorKey)
		listArgs = []any{receptorKey, page.PageSize, page.Offset()}
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM predictions `+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count predictions")
	}

	query := `
		SELECT id, structure_key, ligand_smiles, receptor_key, receptor_fasta,
		       result, created_at
		FROM predictions `
	if receptorKey != "" {
		query += where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	}

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list predictions")
	}
	defer rows.Close()

	var out []*docking.PredictionRecord
	for rows.Next() {
		var (
			rec        docking.PredictionRecord
			resultJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.StructureKey, &rec.LigandSMILES, &rec.ReceptorKey,
			&rec.ReceptorFASTA, &resultJSON, &rec.CreatedAt); err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan prediction row")
		}
		var result dtypes.AffinityResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal prediction result")
		}
		rec.Result = result
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "prediction row iteration failed")
	}
	return out, total, nil
}
