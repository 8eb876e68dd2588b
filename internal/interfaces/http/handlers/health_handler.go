package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// pingTimeout bounds each component probe so a hung dependency cannot stall
// the readiness endpoint.
const pingTimeout = 2 * time.Second

// Pinger is the health probe every infrastructure client exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse aggregates component health for the readiness endpoint.
type HealthResponse struct {
	Status     common.HealthStatus      `json:"status"`
	Components []common.ComponentHealth `json:"components,omitempty"`
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	components map[string]Pinger
	metrics    *prometheus.AppMetrics
}

// NewHealthHandler builds the handler; nil pingers in components are skipped,
// so callers can pass partially-wired infrastructure.
func NewHealthHandler(components map[string]Pinger, metrics *prometheus.AppMetrics) *HealthHandler {
	filtered := make(map[string]Pinger, len(components))
	for name, p := range components {
		if p != nil {
			filtered[name] = p
		}
	}
	return &HealthHandler{components: filtered, metrics: metrics}
}

// Liveness handles GET /healthz. The process is alive if it can answer.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: common.HealthUp})
}

// Readiness handles GET /readyz, probing every registered component.
func (h *HealthHandler) Readiness(c *gin.Context) {
	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := common.HealthUp
	results := make([]common.ComponentHealth, 0, len(names))
	for _, name := range names {
		ch := h.probe(c.Request.Context(), name, h.components[name])
		if ch.Status == common.HealthDown {
			overall = common.HealthDown
		}
		results = append(results, ch)
	}

	status := http.StatusOK
	if overall != common.HealthUp {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, HealthResponse{Status: overall, Components: results})
}

func (h *HealthHandler) probe(ctx context.Context, name string, p Pinger) common.ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)

	ch := common.ComponentHealth{Name: name, Status: common.HealthUp, Latency: latency}
	gauge := 1.0
	if err != nil {
		ch.Status = common.HealthDown
		ch.Message = err.Error()
		gauge = 0
	}
	if h.metrics != nil {
		h.metrics.HealthCheckStatus.WithLabelValues(name).Set(gauge)
	}
	return ch
}
