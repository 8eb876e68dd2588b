// Package repositories contains the PostgreSQL implementations of the domain
// repository interfaces.  Descriptor sets and prediction payloads are stored
// as JSONB so the schema survives coefficient additions without migration
// churn.
package repositories

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// LigandRepository is the PostgreSQL implementation of ligand.Repository.
type LigandRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewLigandRepository constructs a ready-to-use LigandRepository.
func NewLigandRepository(pool *pgxpool.Pool, log logging.Logger) *LigandRepository {
	return &LigandRepository{pool: pool, logger: log.Named("ligand_repo")}
}

// Save upserts by ID.
func (r *LigandRepository) Save(ctx context.Context, l *ligand.Ligand) error {
	descJSON, err := json.Marshal(l.Descriptors)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal descriptors")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO ligands (
			id, smiles, structure_key, name, descriptors,
			created_at, updated_at, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			descriptors = EXCLUDED.descriptors,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version`,
		l.ID, l.SMILES, l.StructureKey, l.Name, descJSON,
		l.CreatedAt, l.UpdatedAt, l.Version,
	)
	if err != nil {
		r.logger.Error("save failed", logging.String("id", string(l.ID)), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save ligand")
	}
	return nil
}

// FindByID loads one ligand by UUID.
func (r *LigandRepository) FindByID(ctx context.Context, id common.ID) (*ligand.Ligand, error) {
	return r.findOne(ctx, `WHERE id = $1`, string(id))
}

// FindByStructureKey loads one ligand by its deterministic structure key.
func (r *LigandRepository) FindByStructureKey(ctx context.Context, key string) (*ligand.Ligand, error) {
	return r.findOne(ctx, `WHERE structure_key = $1`, key)
}

func (r *LigandRepository) findOne(ctx context.Context, where string, arg any) (*ligand.Ligand, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, smiles, structure_key, name, descriptors,
		       created_at, updated_at, version
		FROM ligands `+where, arg)

	l, err := scanLigand(row)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeLigandNotFound, "ligand not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load ligand")
	}
	return l, nil
}

// List returns a page ordered by creation time descending plus the total count.
func (r *LigandRepository) List(ctx context.Context, page common.Pagination) ([]*ligand.Ligand, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM ligands`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count ligands")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, smiles, structure_key, name, descriptors,
		       created_at, updated_at, version
		FROM ligands
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list ligands")
	}
	defer rows.Close()

	var out []*ligand.Ligand
	for rows.Next() {
		l, err := scanLigand(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan ligand row")
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "ligand row iteration failed")
	}
	return out, total, nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLigand(row rowScanner) (*ligand.Ligand, error) {
	var (
		l        ligand.Ligand
		descJSON []byte
	)
	if err := row.Scan(&l.ID, &l.SMILES, &l.StructureKey, &l.Name, &descJSON,
		&l.CreatedAt, &l.UpdatedAt, &l.Version); err != nil {
		return nil, err
	}
	var desc ltypes.DescriptorSet
	if err := json.Unmarshal(descJSON, &desc); err != nil {
		return nil, err
	}
	l.Descriptors = desc
	return &l, nil
}
