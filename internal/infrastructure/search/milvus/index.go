package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

const (
	fieldStructureKey = "structure_key"
	fieldDescriptor   = "descriptor"

	structureKeyMaxLen = 64
	defaultNList       = 128
	defaultTopK        = 10
	searchNProbe       = 16
)

var _ ligand.VectorIndex = (*DescriptorIndex)(nil)

// DescriptorIndex stores ligand descriptor vectors in a Milvus collection and
// answers nearest-neighbour queries over them.
type DescriptorIndex struct {
	client     *Client
	collection string
	nlist      int
	topKCap    int
	logger     logging.Logger
}

// NewDescriptorIndex builds the index on an established client and ensures
// the backing collection exists, is indexed, and is loaded.
func NewDescriptorIndex(ctx context.Context, c *Client, cfg config.MilvusConfig, logger logging.Logger) (*DescriptorIndex, error) {
	if logger == nil {
		logger = logging.Default()
	}
	idx := &DescriptorIndex{
		client:     c,
		collection: cfg.Collection,
		nlist:      cfg.NList,
		topKCap:    cfg.DefaultTopK,
		logger:     logger.Named("milvus.index"),
	}
	if idx.collection == "" {
		return nil, errors.New(errors.ErrCodeValidation, "milvus collection name is required")
	}
	if idx.nlist <= 0 {
		idx.nlist = defaultNList
	}
	if idx.topKCap <= 0 {
		idx.topKCap = defaultTopK
	}
	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// ensureCollection creates the collection, its IVF_FLAT index, and loads it.
// Safe to call on every startup.
func (i *DescriptorIndex) ensureCollection(ctx context.Context) error {
	mc := i.client.Raw()

	exists, err := mc.HasCollection(ctx, i.collection)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to check collection")
	}
	if !exists {
		schema := entity.NewSchema().
			WithName(i.collection).
			WithDescription("ligand descriptor vectors keyed by structure key").
			WithField(entity.NewField().
				WithName(fieldStructureKey).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(structureKeyMaxLen).
				WithIsPrimaryKey(true)).
			WithField(entity.NewField().
				WithName(fieldDescriptor).
				WithDataType(entity.FieldTypeFloatVector).
				WithDim(int64(ltypes.VectorDim)))
		if err := mc.CreateCollection(ctx, schema, 1); err != nil {
			return errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to create collection")
		}

		index, err := entity.NewIndexIvfFlat(entity.L2, i.nlist)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to build index spec")
		}
		if err := mc.CreateIndex(ctx, i.collection, fieldDescriptor, index, false); err != nil {
			return errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to create index")
		}
		i.logger.Info("collection created", logging.String("collection", i.collection))
	}

	if err := mc.LoadCollection(ctx, i.collection, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to load collection")
	}
	return nil
}

// Index upserts one descriptor vector keyed by structure key.
func (i *DescriptorIndex) Index(ctx context.Context, structureKey string, vector []float32) error {
	if structureKey == "" {
		return errors.New(errors.ErrCodeValidation, "structure key is required")
	}
	if len(vector) != ltypes.VectorDim {
		return errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("descriptor vector must have %d dimensions, got %d", ltypes.VectorDim, len(vector)))
	}

	keyCol := entity.NewColumnVarChar(fieldStructureKey, []string{structureKey})
	vecCol := entity.NewColumnFloatVector(fieldDescriptor, ltypes.VectorDim, [][]float32{vector})

	if _, err := i.client.Raw().Upsert(ctx, i.collection, "", keyCol, vecCol); err != nil {
		return errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to upsert descriptor vector")
	}
	i.logger.Debug("descriptor indexed", logging.String("structure_key", structureKey))
	return nil
}

// Search returns the topK nearest structure keys for a query vector. Smaller
// L2 distance means more similar, so hits come back best first already.
func (i *DescriptorIndex) Search(ctx context.Context, vector []float32, topK int) ([]ligand.VectorHit, error) {
	if len(vector) != ltypes.VectorDim {
		return nil, errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("query vector must have %d dimensions, got %d", ltypes.VectorDim, len(vector)))
	}
	if topK <= 0 || topK > i.topKCap {
		topK = i.topKCap
	}

	sp, err := entity.NewIndexIvfFlatSearchParam(searchNProbe)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to build search params")
	}

	results, err := i.client.Raw().Search(ctx, i.collection, nil, "",
		[]string{fieldStructureKey},
		[]entity.Vector{entity.FloatVector(vector)},
		fieldDescriptor, entity.L2, topK, sp)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSimilaritySearch, "descriptor search failed")
	}

	var hits []ligand.VectorHit
	for _, res := range results {
		for j := 0; j < res.ResultCount; j++ {
			key, err := res.IDs.GetAsString(j)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeSimilaritySearch, "failed to read hit key")
			}
			hits = append(hits, ligand.VectorHit{StructureKey: key, Score: res.Scores[j]})
		}
	}
	return hits, nil
}
