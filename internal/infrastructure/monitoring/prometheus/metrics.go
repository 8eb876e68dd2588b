package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every application metric for the DeepDock service.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Prediction
	PredictionsTotal      CounterVec
	PredictionDuration    HistogramVec
	PredictionCacheHits   CounterVec
	PredictionCacheMisses CounterVec

	// Docking jobs
	JobsSubmittedTotal CounterVec
	JobsFinishedTotal  CounterVec
	JobProcessDuration HistogramVec
	JobQueueDepth      GaugeVec
	JobRetriesTotal    CounterVec

	// Ligand registry / similarity search
	LigandsRegisteredTotal   CounterVec
	SimilaritySearchDuration HistogramVec

	// External structure sources
	SourceFetchTotal    CounterVec
	SourceFetchDuration HistogramVec

	// Exports
	ExportsTotal   CounterVec
	ExportDuration HistogramVec

	// Infrastructure
	DBQueryDuration  HistogramVec
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// System health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default bucket sets.
var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDBDurationBuckets     = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultSourceDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15}
)

// NewAppMetrics registers all service metrics against the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	m.PredictionsTotal = collector.RegisterCounter("predictions_total", "Affinity predictions served", "receptor", "cached")
	m.PredictionDuration = collector.RegisterHistogram("prediction_duration_seconds", "Affinity prediction duration", DefaultHTTPDurationBuckets, "receptor")
	m.PredictionCacheHits = collector.RegisterCounter("prediction_cache_hits_total", "Prediction cache hits", "receptor")
	m.PredictionCacheMisses = collector.RegisterCounter("prediction_cache_misses_total", "Prediction cache misses", "receptor")

	m.JobsSubmittedTotal = collector.RegisterCounter("jobs_submitted_total", "Docking jobs submitted", "receptor")
	m.JobsFinishedTotal = collector.RegisterCounter("jobs_finished_total", "Docking jobs finished", "status")
	m.JobProcessDuration = collector.RegisterHistogram("job_process_duration_seconds", "Docking job processing duration", DefaultHTTPDurationBuckets, "receptor")
	m.JobQueueDepth = collector.RegisterGauge("job_queue_depth", "Pending docking jobs", "topic")
	m.JobRetriesTotal = collector.RegisterCounter("job_retries_total", "Docking job retries", "reason")

	m.LigandsRegisteredTotal = collector.RegisterCounter("ligands_registered_total", "Ligands registered")
	m.SimilaritySearchDuration = collector.RegisterHistogram("similarity_search_duration_seconds", "Descriptor-vector similarity search duration", DefaultDBDurationBuckets)

	m.SourceFetchTotal = collector.RegisterCounter("source_fetch_total", "External structure source fetches", "source", "status")
	m.SourceFetchDuration = collector.RegisterHistogram("source_fetch_duration_seconds", "External structure source fetch duration", DefaultSourceDurationBuckets, "source")

	m.ExportsTotal = collector.RegisterCounter("exports_total", "Export artifacts generated", "format", "status")
	m.ExportDuration = collector.RegisterHistogram("export_duration_seconds", "Export generation duration", DefaultHTTPDurationBuckets, "format")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "repo", "operation")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type")

	return m
}

// ─────────────────────────────────────────────────────────────────────────────
// Recording helpers
// ─────────────────────────────────────────────────────────────────────────────

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordPrediction(m *AppMetrics, receptor string, cached bool, duration time.Duration) {
	m.PredictionsTotal.WithLabelValues(receptor, strconv.FormatBool(cached)).Inc()
	m.PredictionDuration.WithLabelValues(receptor).Observe(duration.Seconds())
	if cached {
		m.PredictionCacheHits.WithLabelValues(receptor).Inc()
	} else {
		m.PredictionCacheMisses.WithLabelValues(receptor).Inc()
	}
}

func RecordSourceFetch(m *AppMetrics, source string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SourceFetchTotal.WithLabelValues(source, status).Inc()
	m.SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func RecordDBQuery(m *AppMetrics, repo, operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(repo, operation).Observe(duration.Seconds())
	if err != nil {
		m.ErrorsTotal.WithLabelValues(repo, "query_error").Inc()
	}
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}
