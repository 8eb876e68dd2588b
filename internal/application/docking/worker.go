package docking

import (
	"context"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	domdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/messaging/kafka"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/deepdock"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// Worker processes submitted docking jobs off the queue: it walks each job
// through pending → running → completed/failed and announces the outcome.
type Worker struct {
	jobs      domdock.JobRepository
	publisher EventPublisher
	cfg       config.WorkerConfig
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// NewWorker wires a docking worker. publisher and metrics may be nil.
func NewWorker(jobs domdock.JobRepository, publisher EventPublisher, cfg config.WorkerConfig, metrics *prometheus.AppMetrics, logger logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Worker{
		jobs:      jobs,
		publisher: publisher,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger.Named("worker"),
	}
}

// Handle is the kafka.Handler for docking.submitted events.
func (w *Worker) Handle(ctx context.Context, envelope *kafka.EventEnvelope) error {
	var payload kafka.JobSubmittedPayload
	if err := envelope.DecodePayload(&payload); err != nil {
		// Undecodable payloads are dropped, not retried.
		w.logger.Error("dropping undecodable job event",
			logging.String("event_id", envelope.EventID),
			logging.Err(err))
		return nil
	}
	return w.Process(ctx, common.ID(payload.JobID))
}

// Process executes one docking job end to end. Redeliveries of finished jobs
// are acknowledged without reprocessing.
func (w *Worker) Process(ctx context.Context, jobID common.ID) error {
	job, err := w.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeJobNotFound {
			w.logger.Warn("job event references unknown job", logging.String("job_id", string(jobID)))
			return nil
		}
		return err
	}
	if job.Status != dtypes.JobPending {
		w.logger.Debug("skipping redelivered job",
			logging.String("job_id", string(jobID)),
			logging.String("status", string(job.Status)))
		return nil
	}

	if err := job.Start(); err != nil {
		return err
	}
	if err := w.saveWithRetry(ctx, job); err != nil {
		return err
	}

	start := time.Now()
	if w.cfg.SimulatedDelay > 0 {
		// The estimator is instant; the delay makes job progression
		// observable in demos.
		select {
		case <-time.After(w.cfg.SimulatedDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	result := deepdock.Predict(deepdock.Input{
		LigandSMILES:  job.LigandSMILES,
		ReceptorKey:   job.ReceptorKey,
		ReceptorFASTA: job.ReceptorFASTA,
	})

	if err := job.Complete(result); err != nil {
		return err
	}
	if err := w.saveWithRetry(ctx, job); err != nil {
		return w.fail(ctx, job, "failed to persist result: "+err.Error())
	}
	job.ClearEvents()

	w.publish(ctx, kafka.TopicJobCompleted, string(job.ID), kafka.JobCompletedPayload{
		JobID:       string(job.ID),
		ReceptorKey: job.ReceptorKey,
		PKd:         result.PKd,
		Confidence:  result.Confidence,
		FinishedAt:  *job.FinishedAt,
	})

	if w.metrics != nil {
		w.metrics.JobsFinishedTotal.WithLabelValues(string(dtypes.JobCompleted)).Inc()
		w.metrics.JobProcessDuration.WithLabelValues(job.ReceptorKey).Observe(time.Since(start).Seconds())
	}
	w.logger.Info("docking job completed",
		logging.String("job_id", string(job.ID)),
		logging.Float64("pkd", result.PKd))
	return nil
}

// fail marks the job failed and announces it. The original cause is already
// in the reason string, so fail itself returns nil to commit the message.
func (w *Worker) fail(ctx context.Context, job *domdock.Job, reason string) error {
	if err := job.Fail(reason); err != nil {
		w.logger.Error("cannot mark job failed", logging.Err(err))
		return nil
	}
	if err := w.saveWithRetry(ctx, job); err != nil {
		w.logger.Error("cannot persist failed job",
			logging.String("job_id", string(job.ID)),
			logging.Err(err))
		return nil
	}
	job.ClearEvents()

	w.publish(ctx, kafka.TopicJobFailed, string(job.ID), kafka.JobFailedPayload{
		JobID:    string(job.ID),
		Reason:   reason,
		FailedAt: *job.FinishedAt,
	})
	if w.metrics != nil {
		w.metrics.JobsFinishedTotal.WithLabelValues(string(dtypes.JobFailed)).Inc()
	}
	w.logger.Warn("docking job failed",
		logging.String("job_id", string(job.ID)),
		logging.String("reason", reason))
	return nil
}

func (w *Worker) saveWithRetry(ctx context.Context, job *domdock.Job) error {
	var err error
	attempts := w.cfg.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if w.metrics != nil {
				w.metrics.JobRetriesTotal.WithLabelValues("save").Inc()
			}
			select {
			case <-time.After(w.cfg.RetryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = w.jobs.Save(ctx, job); err == nil {
			return nil
		}
	}
	return err
}

func (w *Worker) publish(ctx context.Context, topic, key string, payload interface{}) {
	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish(ctx, topic, key, payload); err != nil {
		w.logger.Error("failed to publish job event",
			logging.String("topic", topic),
			logging.Err(err))
	}
}
