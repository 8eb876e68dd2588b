package docking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

func TestJobLifecycle(t *testing.T) {
	j := NewJob("CCO", "il-6", "")
	assert.Equal(t, dtypes.JobPending, j.Status)
	assert.Equal(t, 1, j.Version)
	require.Len(t, j.Events(), 1)

	require.NoError(t, j.Start())
	assert.Equal(t, dtypes.JobRunning, j.Status)
	require.NotNil(t, j.StartedAt)

	result := dtypes.AffinityResult{PKd: 6.2, Confidence: 84}
	require.NoError(t, j.Complete(result))
	assert.Equal(t, dtypes.JobCompleted, j.Status)
	require.NotNil(t, j.Result)
	assert.Equal(t, 6.2, j.Result.PKd)
	require.NotNil(t, j.FinishedAt)
	assert.Equal(t, 3, j.Version)

	events := j.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "docking.job_completed", events[1].EventType())
}

func TestJob_InvalidTransitions(t *testing.T) {
	j := NewJob("CCO", "il-6", "")

	err := j.Complete(dtypes.AffinityResult{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeJobStateInvalid))

	require.NoError(t, j.Start())
	err = j.Start()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeJobStateInvalid))

	require.NoError(t, j.Complete(dtypes.AffinityResult{}))
	err = j.Fail("too late")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeJobStateInvalid))
}

func TestJob_FailFromPending(t *testing.T) {
	j := NewJob("CCO", "custom", "MNSFST")
	require.NoError(t, j.Fail("worker shutting down"))
	assert.Equal(t, dtypes.JobFailed, j.Status)
	assert.Equal(t, "worker shutting down", j.FailureReason)
	require.NotNil(t, j.FinishedAt)
	assert.Nil(t, j.StartedAt)
}
