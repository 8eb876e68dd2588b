package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
)

// Logging emits one structured line per request and records HTTP metrics.
// metrics may be nil.
func Logging(logger logging.Logger, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		// FullPath keeps the route template so metrics cardinality stays
		// bounded; raw Path would explode on IDs.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		if metrics != nil {
			active := metrics.HTTPActiveRequests.WithLabelValues(c.Request.Method, path)
			active.Inc()
			defer active.Dec()
		}

		c.Next()

		took := time.Since(start)
		status := c.Writer.Status()

		if metrics != nil {
			prometheus.RecordHTTPRequest(metrics, c.Request.Method, path, status, took)
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("duration", took),
			logging.String("client_ip", c.ClientIP()),
			logging.String("request_id", GetRequestID(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}

// BodyLimit rejects request bodies larger than maxBytes. Zero disables the
// limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
