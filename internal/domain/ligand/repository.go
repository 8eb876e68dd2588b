package ligand

import (
	"context"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// Repository abstracts ligand persistence.  Implementations live under
// internal/infrastructure/database.
type Repository interface {
	// Save inserts a new ligand or updates an existing one by ID.
	Save(ctx context.Context, l *Ligand) error

	// FindByID loads a ligand by its UUID.  Returns ErrCodeLigandNotFound
	// when absent.
	FindByID(ctx context.Context, id common.ID) (*Ligand, error)

	// FindByStructureKey loads a ligand by its deterministic structure key.
	// Returns ErrCodeLigandNotFound when absent.
	FindByStructureKey(ctx context.Context, key string) (*Ligand, error)

	// List returns a page of ligands ordered by creation time descending.
	List(ctx context.Context, page common.Pagination) ([]*Ligand, int64, error)
}

// VectorHit is one nearest-neighbour result from the descriptor index.
type VectorHit struct {
	StructureKey string
	Score        float32
}

// VectorIndex abstracts the descriptor-vector similarity index.  The Milvus
// implementation lives under internal/infrastructure/search.
type VectorIndex interface {
	// Index upserts a ligand's descriptor vector keyed by structure key.
	Index(ctx context.Context, structureKey string, vector []float32) error

	// Search returns the topK nearest structure keys for a query vector,
	// best score first.
	Search(ctx context.Context, vector []float32, topK int) ([]VectorHit, error)
}
