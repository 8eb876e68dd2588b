// API server entry point for the DeepDock affinity service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/docking"
	appexport "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/export"
	applig "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	domlig "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/database/postgres"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/database/postgres/repositories"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/database/redis"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/external"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/messaging/kafka"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	promcollector "github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/search/milvus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/storage/minio"
	httpserver "github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http/handlers"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	logger.Info("starting deepdock api server", logging.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres is the system of record; without it the server cannot run.
	db, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", logging.Err(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("failed to apply migrations", logging.Err(err))
	}
	if *migrateOnly {
		logger.Info("migrations applied")
		return
	}

	jobRepo := repositories.NewJobRepository(db.Pool(), logger)
	predictionRepo := repositories.NewPredictionRepository(db.Pool(), logger)
	ligandRepo := repositories.NewLigandRepository(db.Pool(), logger)

	collector, err := promcollector.NewMetricsCollector(promcollector.CollectorConfig{
		Namespace:            "deepdock",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create metrics collector", logging.Err(err))
	}
	metrics := promcollector.NewAppMetrics(collector)

	// Everything below degrades gracefully: a missing dependency disables its
	// feature instead of taking the whole API down.
	pingers := map[string]handlers.Pinger{"postgres": db}

	var cache redis.Cache
	redisClient, err := redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, prediction cache disabled", logging.Err(err))
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, logger)
		pingers["redis"] = redisClient
	}

	producer := kafka.NewProducer(cfg.Kafka, "apiserver", logger)
	defer producer.Close()

	var index domlig.VectorIndex
	milvusClient, err := milvus.NewClient(ctx, cfg.Milvus, logger)
	if err != nil {
		logger.Warn("milvus unavailable, similarity search disabled", logging.Err(err))
	} else {
		defer milvusClient.Close()
		pingers["milvus"] = milvusClient
		if idx, err := milvus.NewDescriptorIndex(ctx, milvusClient, cfg.Milvus, logger); err != nil {
			logger.Warn("failed to prepare descriptor index", logging.Err(err))
		} else {
			index = idx
		}
	}

	var store minio.ArtifactStore
	minioClient, err := minio.NewClient(ctx, cfg.MinIO, logger)
	if err != nil {
		logger.Warn("minio unavailable, exports disabled", logging.Err(err))
	} else {
		store = minio.NewArtifactStore(minioClient, cfg.MinIO.PresignExpiry, logger)
		pingers["minio"] = minioClient
	}

	resolver := external.NewStructureResolver(
		external.NewRCSBClient(cfg.Sources, logger),
		external.NewAlphaFoldClient(cfg.Sources, logger),
		metrics, logger)
	pubchem := external.NewPubChemClient(cfg.Sources, logger)

	dockingService := appdock.NewService(jobRepo, predictionRepo, cache, producer, metrics, logger)
	ligandService := applig.NewService(ligandRepo, index, producer, pubchem, metrics, logger)

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	routerCfg := httpserver.RouterConfig{
		Server:      cfg.Server,
		Docking:     handlers.NewDockingHandler(dockingService),
		Ligand:      handlers.NewLigandHandler(ligandService),
		Receptor:    handlers.NewReceptorHandler(),
		Structure:   handlers.NewStructureHandler(resolver),
		Health:      handlers.NewHealthHandler(pingers, metrics),
		Collector:   collector,
		Metrics:     metrics,
		Logger:      logger,
		RateLimiter: limiter,
	}
	if store != nil {
		exportService := appexport.NewService(predictionRepo, jobRepo, resolver, store, metrics, logger)
		routerCfg.Export = handlers.NewExportHandler(exportService)
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)

	// Hot-reload the safe subset of settings when the config file changes.
	if _, statErr := os.Stat(*configPath); statErr == nil {
		config.Watch(*configPath, func(updated *config.Config) {
			if limiter != nil {
				limiter.Update(updated.Server.RateLimitRPS, updated.Server.RateLimitBurst)
			}
			logger.Info("configuration reloaded",
				logging.Float64("rate_limit_rps", updated.Server.RateLimitRPS),
				logging.Int("rate_limit_burst", updated.Server.RateLimitBurst))
		})
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("http server failed", logging.Err(err))
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("shutdown error", logging.Err(err))
	}
	logger.Info("server stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// No file is fine in containerized deployments; env vars carry the
		// configuration.
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
