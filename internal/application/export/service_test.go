package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/deepdock"
	apperrors "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

type fakeStore struct {
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.objects[key] = data
	return "https://storage.local/" + key, nil
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if data, ok := s.objects[key]; ok {
		return data, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeArtifactNotFound, "artifact not found")
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStore) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://storage.local/" + key, nil
}

type fakePredictions struct {
	records []*domdock.PredictionRecord
}

func (r *fakePredictions) Save(_ context.Context, rec *domdock.PredictionRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *fakePredictions) List(_ context.Context, receptorKey string, _ common.Pagination) ([]*domdock.PredictionRecord, int64, error) {
	var out []*domdock.PredictionRecord
	for _, rec := range r.records {
		if receptorKey == "" || rec.ReceptorKey == receptorKey {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

type fakeJobs struct {
	jobs map[common.ID]*domdock.Job
}

func (r *fakeJobs) Save(_ context.Context, j *domdock.Job) error {
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeJobs) FindByID(_ context.Context, id common.ID) (*domdock.Job, error) {
	if j, ok := r.jobs[id]; ok {
		return j, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeJobNotFound, "docking job not found")
}

func (r *fakeJobs) List(_ context.Context, _ dtypes.JobStatus, _ common.Pagination) ([]*domdock.Job, int64, error) {
	return nil, 0, nil
}

func sampleRecord(receptorKey string) *domdock.PredictionRecord {
	return &domdock.PredictionRecord{
		ID:           common.NewID(),
		StructureKey: "LIG-2A7E92A3",
		LigandSMILES: "CCO",
		ReceptorKey:  receptorKey,
		Result:       deepdock.Predict(deepdock.Input{LigandSMILES: "CCO", ReceptorKey: receptorKey}),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestHistoryCSV(t *testing.T) {
	preds := &fakePredictions{records: []*domdock.PredictionRecord{
		sampleRecord("il-6"),
		sampleRecord("egfr"),
	}}
	store := newFakeStore()
	svc := NewService(preds, &fakeJobs{jobs: map[common.ID]*domdock.Job{}}, nil, store, nil, nil)

	artifact, err := svc.HistoryCSV(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, artifact.Format)
	assert.Contains(t, artifact.URL, "https://storage.local/exports/csv/")

	data := store.objects[artifact.Key]
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3) // header + 2 records
	assert.Contains(t, lines[0], "pkd")
	assert.Contains(t, lines[1], "CCO")
}

func TestHistoryCSV_FiltersByReceptor(t *testing.T) {
	preds := &fakePredictions{records: []*domdock.PredictionRecord{
		sampleRecord("il-6"),
		sampleRecord("egfr"),
	}}
	store := newFakeStore()
	svc := NewService(preds, &fakeJobs{jobs: map[common.ID]*domdock.Job{}}, nil, store, nil, nil)

	artifact, err := svc.HistoryCSV(context.Background(), "il-6")
	require.NoError(t, err)

	data := string(store.objects[artifact.Key])
	assert.Contains(t, data, "il-6")
	assert.NotContains(t, data, "egfr")
}

func TestJobReport_RequiresCompletedJob(t *testing.T) {
	jobs := &fakeJobs{jobs: map[common.ID]*domdock.Job{}}
	job := domdock.NewJob("CCO", "il-6", "")
	jobs.jobs[job.ID] = job

	svc := NewService(&fakePredictions{}, jobs, nil, newFakeStore(), nil, nil)

	_, err := svc.JobReport(context.Background(), job.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeExportFailed, apperrors.GetCode(err))
}

func TestJobReport_RendersCompletedJob(t *testing.T) {
	jobs := &fakeJobs{jobs: map[common.ID]*domdock.Job{}}
	job := domdock.NewJob("CCO", "il-6", "")
	require.NoError(t, job.Start())
	require.NoError(t, job.Complete(deepdock.Predict(deepdock.Input{LigandSMILES: "CCO", ReceptorKey: "il-6"})))
	jobs.jobs[job.ID] = job

	store := newFakeStore()
	svc := NewService(&fakePredictions{}, jobs, nil, store, nil, nil)

	artifact, err := svc.JobReport(context.Background(), job.ID)
	require.NoError(t, err)

	text := string(store.objects[artifact.Key])
	assert.Contains(t, text, "DeepDock Affinity Report")
	assert.Contains(t, text, "CCO")
	assert.Contains(t, text, "Predicted pKd")
	assert.Contains(t, text, "hydrogen_bond")
}

func TestStructurePDB_WithoutResolver(t *testing.T) {
	svc := NewService(&fakePredictions{}, &fakeJobs{jobs: map[common.ID]*domdock.Job{}}, nil, newFakeStore(), nil, nil)

	_, err := svc.StructurePDB(context.Background(), "1ALU")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSourceUnavailable, apperrors.GetCode(err))
}
