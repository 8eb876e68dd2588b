package docking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	domdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/messaging/kafka"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/deepdock"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

func submitJob(t *testing.T, repo *fakeJobRepo, smiles, receptorKey string) *domdock.Job {
	t.Helper()
	job := domdock.NewJob(smiles, receptorKey, "")
	require.NoError(t, repo.Save(context.Background(), job))
	return job
}

func TestWorker_ProcessCompletesJob(t *testing.T) {
	jobs := newFakeJobRepo()
	pub := &fakePublisher{}
	worker := NewWorker(jobs, pub, config.WorkerConfig{}, nil, nil)

	job := submitJob(t, jobs, "CCO", "il-6")
	require.NoError(t, worker.Process(context.Background(), job.ID))

	stored, err := jobs.FindByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, dtypes.JobCompleted, stored.Status)
	require.NotNil(t, stored.Result)
	assert.NotNil(t, stored.StartedAt)
	assert.NotNil(t, stored.FinishedAt)

	// The worker must reproduce exactly what a synchronous call would give.
	want := deepdock.Predict(deepdock.Input{LigandSMILES: "CCO", ReceptorKey: "il-6"})
	assert.Equal(t, want, *stored.Result)

	require.Len(t, pub.published, 1)
	assert.Equal(t, kafka.TopicJobCompleted, pub.published[0].Topic)
	payload, ok := pub.published[0].Payload.(kafka.JobCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, want.PKd, payload.PKd)
}

func TestWorker_SkipsRedeliveredFinishedJob(t *testing.T) {
	jobs := newFakeJobRepo()
	pub := &fakePublisher{}
	worker := NewWorker(jobs, pub, config.WorkerConfig{}, nil, nil)

	job := submitJob(t, jobs, "CCO", "il-6")
	require.NoError(t, worker.Process(context.Background(), job.ID))
	require.NoError(t, worker.Process(context.Background(), job.ID))

	// Only one completion event despite the redelivery.
	assert.Len(t, pub.published, 1)
}

func TestWorker_UnknownJobIsAcknowledged(t *testing.T) {
	worker := NewWorker(newFakeJobRepo(), &fakePublisher{}, config.WorkerConfig{}, nil, nil)
	assert.NoError(t, worker.Process(context.Background(), common.NewID()))
}

func TestWorker_HandleDecodesEnvelope(t *testing.T) {
	jobs := newFakeJobRepo()
	worker := NewWorker(jobs, &fakePublisher{}, config.WorkerConfig{}, nil, nil)

	job := submitJob(t, jobs, "c1ccccc1", "cox-2")
	envelope, err := kafka.NewEnvelope(kafka.TopicJobSubmitted, "test", kafka.JobSubmittedPayload{
		JobID:        string(job.ID),
		LigandSMILES: job.LigandSMILES,
		ReceptorKey:  job.ReceptorKey,
	})
	require.NoError(t, err)

	require.NoError(t, worker.Handle(context.Background(), envelope))

	stored, err := jobs.FindByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, dtypes.JobCompleted, stored.Status)
}
