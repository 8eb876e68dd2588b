// Package ligand provides the application-level service for ligand
// registration, descriptor estimation, and similarity search.
package ligand

import (
	"context"
	"strings"
	"time"

	domlig "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/messaging/kafka"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

const defaultSimilarTopK = 10

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// Depicter resolves compound identifiers and renders 2D depictions for a
// SMILES string. Satisfied by the PubChem client.
type Depicter interface {
	ResolveCID(ctx context.Context, smiles string) (int64, error)
	DepictionPNG(ctx context.Context, smiles string) ([]byte, error)
}

// Service defines the application operations for ligands.
type Service interface {
	// Register validates and stores a ligand, indexing its descriptor vector
	// for similarity search. Re-registering the same structure returns the
	// existing ligand.
	Register(ctx context.Context, req ltypes.RegisterRequest) (*ltypes.LigandDTO, error)

	// Describe estimates descriptors without registering anything. When a
	// depicter is configured the response also carries the PubChem CID,
	// resolved on a best-effort basis.
	Describe(ctx context.Context, req ltypes.DescribeRequest) (*ltypes.DescribeResponse, error)

	// Depict renders a 2D PNG depiction of the structure.
	Depict(ctx context.Context, req ltypes.DescribeRequest) ([]byte, error)

	// Get returns one ligand by ID.
	Get(ctx context.Context, id common.ID) (*ltypes.LigandDTO, error)

	// List returns a page of registered ligands.
	List(ctx context.Context, page common.Pagination) (*ltypes.ListResponse, error)

	// Similar finds registered ligands whose descriptor vectors are nearest
	// to the query structure.
	Similar(ctx context.Context, req ltypes.SimilarRequest) (*ltypes.SimilarResponse, error)
}

type serviceImpl struct {
	repo      domlig.Repository
	index     domlig.VectorIndex
	publisher EventPublisher
	depicter  Depicter
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// NewService wires the ligand application service. index, publisher, depicter,
// and metrics may each be nil; the corresponding concern is then skipped.
func NewService(
	repo domlig.Repository,
	index domlig.VectorIndex,
	publisher EventPublisher,
	depicter Depicter,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &serviceImpl{
		repo:      repo,
		index:     index,
		publisher: publisher,
		depicter:  depicter,
		metrics:   metrics,
		logger:    logger.Named("ligand"),
	}
}

func (s *serviceImpl) Register(ctx context.Context, req ltypes.RegisterRequest) (*ltypes.LigandDTO, error) {
	l, err := domlig.NewLigand(req.SMILES, req.Name)
	if err != nil {
		return nil, err
	}

	// Same structure registered before: return it rather than duplicating.
	if existing, err := s.repo.FindByStructureKey(ctx, l.StructureKey); err == nil {
		dto := existing.DTO()
		return &dto, nil
	} else if errors.GetCode(err) != errors.ErrCodeLigandNotFound {
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.Index(ctx, l.StructureKey, l.Descriptors.Vector()); err != nil {
			// Similarity search degrades; registration itself stands.
			s.logger.Warn("failed to index descriptor vector",
				logging.String("structure_key", l.StructureKey),
				logging.Err(err))
		}
	}

	if s.publisher != nil {
		payload := kafka.LigandRegisteredPayload{
			LigandID:     string(l.ID),
			StructureKey: l.StructureKey,
			RegisteredAt: l.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, kafka.TopicLigandRegistered, l.StructureKey, payload); err != nil {
			s.logger.Warn("failed to publish ligand event", logging.Err(err))
		}
	}
	l.ClearEvents()

	if s.metrics != nil {
		s.metrics.LigandsRegisteredTotal.WithLabelValues().Inc()
	}
	s.logger.Info("ligand registered",
		logging.String("structure_key", l.StructureKey),
		logging.String("smiles", l.SMILES))
	dto := l.DTO()
	return &dto, nil
}

func (s *serviceImpl) Describe(ctx context.Context, req ltypes.DescribeRequest) (*ltypes.DescribeResponse, error) {
	smiles := strings.TrimSpace(req.SMILES)
	if smiles == "" {
		return nil, errors.New(errors.ErrCodeLigandInvalidSMILES, "SMILES must not be empty")
	}
	resp := &ltypes.DescribeResponse{
		SMILES:      smiles,
		Descriptors: domlig.EstimateDescriptors(smiles),
	}
	if s.depicter != nil {
		// CID lookup is an annotation, not a requirement; the source being
		// down must not fail the estimate.
		if cid, err := s.depicter.ResolveCID(ctx, smiles); err == nil {
			resp.CID = cid
		} else {
			s.logger.Debug("CID resolution failed", logging.Err(err))
		}
	}
	return resp, nil
}

func (s *serviceImpl) Depict(ctx context.Context, req ltypes.DescribeRequest) ([]byte, error) {
	smiles := strings.TrimSpace(req.SMILES)
	if smiles == "" {
		return nil, errors.New(errors.ErrCodeLigandInvalidSMILES, "SMILES must not be empty")
	}
	if s.depicter == nil {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "depiction source is not configured")
	}
	return s.depicter.DepictionPNG(ctx, smiles)
}

func (s *serviceImpl) Get(ctx context.Context, id common.ID) (*ltypes.LigandDTO, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := l.DTO()
	return &dto, nil
}

func (s *serviceImpl) List(ctx context.Context, page common.Pagination) (*ltypes.ListResponse, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	ligands, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	items := make([]ltypes.LigandDTO, len(ligands))
	for i, l := range ligands {
		items[i] = l.DTO()
	}
	resp := common.NewPageResponse(items, total, page)
	return &resp, nil
}

func (s *serviceImpl) Similar(ctx context.Context, req ltypes.SimilarRequest) (*ltypes.SimilarResponse, error) {
	if s.index == nil {
		return nil, errors.New(errors.ErrCodeSimilaritySearch, "similarity index is not configured")
	}
	l, err := domlig.NewLigand(req.SMILES, "")
	if err != nil {
		return nil, err
	}
	topK := req.TopK
	if topK <= 0 {
		topK = defaultSimilarTopK
	}

	start := time.Now()
	raw, err := s.index.Search(ctx, l.Descriptors.Vector(), topK)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SimilaritySearchDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	}

	hits := make([]ltypes.SimilarHit, 0, len(raw))
	for _, hit := range raw {
		stored, err := s.repo.FindByStructureKey(ctx, hit.StructureKey)
		if err != nil {
			// Index can briefly lead the store; skip keys not yet persisted.
			if errors.GetCode(err) == errors.ErrCodeLigandNotFound {
				continue
			}
			return nil, err
		}
		hits = append(hits, ltypes.SimilarHit{
			Ligand: stored.DTO(),
			Score:  similarityScore(hit.Score),
		})
	}
	return &ltypes.SimilarResponse{Query: l.SMILES, Hits: hits}, nil
}

// similarityScore converts an L2 distance into a bounded score where larger
// means more similar.
func similarityScore(distance float32) float32 {
	return 1 / (1 + distance)
}
