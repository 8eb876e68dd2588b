package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
)

func TestNew(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Debug("boot", String("component", "test"))
}

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.Level(0))
	l := NewFromCore(core)

	l.Named("docking").With(String("receptor", "il-6")).Info("prediction served",
		Int("confidence", 84),
		Float64("pkd", 6.2),
		Bool("cached", true),
		Duration("elapsed", 12*time.Millisecond),
		Err(errors.New("soft failure")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "prediction served", entry.Message)
	assert.Equal(t, "docking", entry.LoggerName)

	fields := entry.ContextMap()
	assert.Equal(t, "il-6", fields["receptor"])
	assert.Equal(t, int64(84), fields["confidence"])
	assert.Equal(t, 6.2, fields["pkd"])
	assert.Equal(t, true, fields["cached"])
	assert.Equal(t, "soft failure", fields["error"])
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, logs := observer.New(zapcore.Level(0))
	SetDefault(NewFromCore(core))
	Default().Info("via default")
	assert.Equal(t, 1, logs.Len())

	// nil is ignored.
	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestNop(t *testing.T) {
	n := NewNop()
	n.Info("discarded")
	assert.Equal(t, n, n.With(String("k", "v")))
	assert.Equal(t, n, n.Named("x"))
}
