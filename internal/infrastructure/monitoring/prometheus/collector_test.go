package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "deepdock"}, logging.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNop())
	assert.Error(t, err)
}

func TestRegisterAndExpose(t *testing.T) {
	c := newTestCollector(t)

	counter := c.RegisterCounter("predictions_total", "Affinity predictions served", "receptor", "cached")
	counter.WithLabelValues("il-6", "false").Inc()
	counter.WithLabelValues("il-6", "false").Add(2)

	gauge := c.RegisterGauge("job_queue_depth", "Pending docking jobs", "topic")
	gauge.WithLabelValues("docking.submitted").Set(7)

	hist := c.RegisterHistogram("prediction_duration_seconds", "Prediction duration", nil, "receptor")
	hist.WithLabelValues("il-6").Observe(0.042)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `deepdock_predictions_total{cached="false",receptor="il-6"} 3`)
	assert.Contains(t, body, `deepdock_job_queue_depth{topic="docking.submitted"} 7`)
	assert.Contains(t, body, "deepdock_prediction_duration_seconds_bucket")
}

func TestRegister_DeduplicatesByName(t *testing.T) {
	c := newTestCollector(t)

	a := c.RegisterCounter("dup_total", "dup", "l")
	b := c.RegisterCounter("dup_total", "dup", "l")
	a.WithLabelValues("x").Inc()
	b.WithLabelValues("x").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `deepdock_dup_total{l="x"} 2`)
}

func TestRegister_ConflictFallsBackToNoop(t *testing.T) {
	c := newTestCollector(t)

	// Same name registered as a different metric type: must degrade to a
	// no-op rather than panic.
	c.RegisterCounter("conflict_total", "first", "a")
	g := c.RegisterGauge("conflict_total", "second", "a")
	assert.NotPanics(t, func() { g.WithLabelValues("x").Set(1) })
}

func TestAppMetrics(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)
	require.NotNil(t, m)

	RecordPrediction(m, "il-6", false, 12*time.Millisecond)
	RecordPrediction(m, "il-6", true, time.Millisecond)
	RecordHTTPRequest(m, "POST", "/api/v1/dock/predict", 200, 15*time.Millisecond)
	RecordSourceFetch(m, "rcsb", nil, 300*time.Millisecond)
	RecordDBQuery(m, "prediction", "insert", 2*time.Millisecond, nil)
	RecordCacheAccess(m, "prediction", true)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`deepdock_predictions_total{cached="false",receptor="il-6"} 1`,
		`deepdock_predictions_total{cached="true",receptor="il-6"} 1`,
		`deepdock_prediction_cache_hits_total{receptor="il-6"} 1`,
		`deepdock_http_requests_total{method="POST",path="/api/v1/dock/predict",status_code="200"} 1`,
		`deepdock_source_fetch_total{source="rcsb",status="ok"} 1`,
		`deepdock_cache_hits_total{cache="prediction"} 1`,
	} {
		assert.True(t, strings.Contains(body, want), "missing %s", want)
	}
}
