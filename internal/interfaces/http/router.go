// Package http assembles the gin router and HTTP server for the DeepDock
// API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http/handlers"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http/middleware"
)

// RouterConfig carries everything the router mounts. Handler fields may be
// nil; the corresponding routes are then not registered, which lets tests and
// partially-configured deployments run with a subset of the API.
type RouterConfig struct {
	Server config.ServerConfig

	Docking   *handlers.DockingHandler
	Ligand    *handlers.LigandHandler
	Receptor  *handlers.ReceptorHandler
	Structure *handlers.StructureHandler
	Export    *handlers.ExportHandler
	Health    *handlers.HealthHandler

	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Logger    logging.Logger

	// RateLimiter, when set, is used instead of a limiter built from the
	// server config. Lets the entry point keep a handle for hot-reloading
	// limits.
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with the full middleware chain and all
// configured routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodySize))

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.Server.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter, "/healthz", "/readyz", "/metrics"))
	}

	if cfg.Health != nil {
		r.GET("/healthz", cfg.Health.Liveness)
		r.GET("/readyz", cfg.Health.Readiness)
	}
	if cfg.Collector != nil {
		r.GET("/metrics", gin.WrapH(cfg.Collector.Handler()))
	}

	v1 := r.Group("/api/v1")

	if cfg.Docking != nil {
		dock := v1.Group("/dock")
		dock.POST("/predict", cfg.Docking.Predict)
		dock.POST("/jobs", cfg.Docking.Submit)
		dock.GET("/jobs", cfg.Docking.ListJobs)
		dock.GET("/jobs/:id", cfg.Docking.GetJob)
		dock.GET("/history", cfg.Docking.History)
	}

	if cfg.Ligand != nil {
		lig := v1.Group("/ligands")
		lig.POST("", cfg.Ligand.Register)
		lig.GET("", cfg.Ligand.List)
		lig.POST("/describe", cfg.Ligand.Describe)
		lig.POST("/depict", cfg.Ligand.Depict)
		lig.POST("/similar", cfg.Ligand.Similar)
		lig.GET("/:id", cfg.Ligand.Get)
	}

	if cfg.Receptor != nil {
		rcp := v1.Group("/receptors")
		rcp.GET("", cfg.Receptor.List)
		rcp.GET("/:key", cfg.Receptor.Get)
	}

	if cfg.Structure != nil {
		v1.GET("/structures/:pdb_id", cfg.Structure.Get)
	}

	if cfg.Export != nil {
		exp := v1.Group("/exports")
		exp.GET("/csv", cfg.Export.HistoryCSV)
		exp.GET("/report/:job_id", cfg.Export.JobReport)
		exp.GET("/pdb/:pdb_id", cfg.Export.StructurePDB)
	}

	return r
}
