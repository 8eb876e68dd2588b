// Package docking provides the application-level service for affinity
// prediction and asynchronous docking jobs. This package sits between the
// HTTP/CLI handlers and the domain logic.
package docking

import (
	"context"
	"fmt"
	"time"

	domdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/receptor"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/database/redis"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/messaging/kafka"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/deepdock"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// predictionCacheTTL bounds staleness of cached predictions. Results are
// deterministic, so the TTL only limits cache growth, not correctness.
const predictionCacheTTL = 24 * time.Hour

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// Service defines the application operations for docking.
type Service interface {
	// Predict runs a synchronous affinity prediction, serving from cache
	// when the same input triple was predicted before.
	Predict(ctx context.Context, req dtypes.PredictRequest) (*dtypes.PredictResponse, error)

	// Submit accepts an asynchronous docking job and announces it to the
	// worker pool.
	Submit(ctx context.Context, req dtypes.PredictRequest) (*dtypes.SubmitResponse, error)

	// GetJob returns one job by ID.
	GetJob(ctx context.Context, id common.ID) (*dtypes.JobDTO, error)

	// ListJobs returns a page of jobs, optionally filtered by status.
	ListJobs(ctx context.Context, status dtypes.JobStatus, page common.Pagination) (*dtypes.JobListResponse, error)

	// History returns a page of persisted predictions, optionally filtered
	// by receptor key.
	History(ctx context.Context, receptorKey string, page common.Pagination) ([]*domdock.PredictionRecord, int64, error)
}

type serviceImpl struct {
	jobs        domdock.JobRepository
	predictions domdock.PredictionRepository
	cache       redis.Cache
	publisher   EventPublisher
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
}

// NewService wires the docking application service. cache, publisher, and
// metrics may each be nil; the corresponding concern is then skipped.
func NewService(
	jobs domdock.JobRepository,
	predictions domdock.PredictionRepository,
	cache redis.Cache,
	publisher EventPublisher,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &serviceImpl{
		jobs:        jobs,
		predictions: predictions,
		cache:       cache,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger.Named("docking"),
	}
}

// validateRequest checks the input triple and returns the predictor input.
// Predefined receptor keys need no FASTA; the custom key requires one.
func validateRequest(req dtypes.PredictRequest) (deepdock.Input, error) {
	if _, err := ligand.NewLigand(req.LigandSMILES, ""); err != nil {
		return deepdock.Input{}, err
	}

	in := deepdock.Input{
		LigandSMILES:  req.LigandSMILES,
		ReceptorKey:   req.ReceptorKey,
		ReceptorFASTA: req.ReceptorFASTA,
	}
	switch {
	case receptor.IsPredefined(req.ReceptorKey):
		return in, nil
	case req.ReceptorKey == receptor.CustomKey:
		if _, err := receptor.NormalizeFASTA(req.ReceptorFASTA); err != nil {
			return deepdock.Input{}, err
		}
		return in, nil
	default:
		return deepdock.Input{}, errors.New(errors.ErrCodeReceptorUnknown, "unknown receptor key").
			WithDetail("key=" + req.ReceptorKey)
	}
}

// cacheKey identifies a prediction by structure key, receptor, and combined
// seed, so cosmetically different but equivalent inputs share an entry.
func cacheKey(in deepdock.Input) string {
	return fmt.Sprintf("prediction:%s:%s:%08x",
		ligand.StructureKey(in.LigandSMILES), in.ReceptorKey, uint32(in.Seed()))
}

func (s *serviceImpl) Predict(ctx context.Context, req dtypes.PredictRequest) (*dtypes.PredictResponse, error) {
	in, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cached := true
	var result dtypes.AffinityResult

	loader := func(ctx context.Context) (interface{}, error) {
		cached = false
		r := deepdock.Predict(in)
		s.persistRecord(ctx, in, r)
		return r, nil
	}

	if s.cache != nil {
		err = s.cache.GetOrSet(ctx, cacheKey(in), &result, predictionCacheTTL, loader)
		if err != nil {
			// Cache trouble must not take prediction down; recompute inline.
			s.logger.Warn("prediction cache unavailable", logging.Err(err))
			cached = false
			result = deepdock.Predict(in)
			s.persistRecord(ctx, in, result)
		}
	} else {
		cached = false
		result = deepdock.Predict(in)
		s.persistRecord(ctx, in, result)
	}

	if s.metrics != nil {
		prometheus.RecordPrediction(s.metrics, in.ReceptorKey, cached, time.Since(start))
	}
	return &dtypes.PredictResponse{
		LigandSMILES: req.LigandSMILES,
		ReceptorKey:  req.ReceptorKey,
		Result:       result,
		Cached:       cached,
	}, nil
}

// persistRecord appends a prediction to history. Failures are logged, not
// propagated: the result is deterministic and can always be recomputed.
func (s *serviceImpl) persistRecord(ctx context.Context, in deepdock.Input, result dtypes.AffinityResult) {
	if s.predictions == nil {
		return
	}
	rec := &domdock.PredictionRecord{
		ID:            common.NewID(),
		StructureKey:  ligand.StructureKey(in.LigandSMILES),
		LigandSMILES:  in.LigandSMILES,
		ReceptorKey:   in.ReceptorKey,
		ReceptorFASTA: in.ReceptorFASTA,
		Result:        result,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.predictions.Save(ctx, rec); err != nil {
		s.logger.Warn("failed to persist prediction record",
			logging.String("structure_key", rec.StructureKey),
			logging.Err(err))
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dtypes.PredictRequest) (*dtypes.SubmitResponse, error) {
	if _, err := validateRequest(req); err != nil {
		return nil, err
	}

	job := domdock.NewJob(req.LigandSMILES, req.ReceptorKey, req.ReceptorFASTA)
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := kafka.JobSubmittedPayload{
			JobID:         string(job.ID),
			LigandSMILES:  job.LigandSMILES,
			ReceptorKey:   job.ReceptorKey,
			ReceptorFASTA: job.ReceptorFASTA,
			SubmittedAt:   job.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, kafka.TopicJobSubmitted, string(job.ID), payload); err != nil {
			return nil, err
		}
	}
	job.ClearEvents()

	if s.metrics != nil {
		s.metrics.JobsSubmittedTotal.WithLabelValues(job.ReceptorKey).Inc()
	}
	s.logger.Info("docking job submitted",
		logging.String("job_id", string(job.ID)),
		logging.String("receptor", job.ReceptorKey))
	return &dtypes.SubmitResponse{JobID: job.ID, Status: job.Status}, nil
}

func (s *serviceImpl) GetJob(ctx context.Context, id common.ID) (*dtypes.JobDTO, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := job.DTO()
	return &dto, nil
}

func (s *serviceImpl) ListJobs(ctx context.Context, status dtypes.JobStatus, page common.Pagination) (*dtypes.JobListResponse, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	jobs, total, err := s.jobs.List(ctx, status, page)
	if err != nil {
		return nil, err
	}
	items := make([]dtypes.JobDTO, len(jobs))
	for i, j := range jobs {
		items[i] = j.DTO()
	}
	resp := common.NewPageResponse(items, total, page)
	return &resp, nil
}

func (s *serviceImpl) History(ctx context.Context, receptorKey string, page common.Pagination) ([]*domdock.PredictionRecord, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}
	return s.predictions.List(ctx, receptorKey, page)
}
