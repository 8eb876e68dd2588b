// Background worker entry point. Consumes submitted docking jobs from Kafka,
// runs the predictor, and persists and announces the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	appdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/database/postgres"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/database/postgres/repositories"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/messaging/kafka"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
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
	logger = logger.Named("worker")
	logger.Info("starting deepdock worker",
		logging.Int("concurrency", cfg.Worker.Concurrency),
		logging.String("group", cfg.Kafka.GroupID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", logging.Err(err))
	}
	defer db.Close()

	jobRepo := repositories.NewJobRepository(db.Pool(), logger)

	producer := kafka.NewProducer(cfg.Kafka, "worker", logger)
	defer producer.Close()

	worker := appdock.NewWorker(jobRepo, producer, cfg.Worker, nil, logger)

	// One consumer per slot, all in the same group, so partitions spread
	// across the pool.
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		consumer := kafka.NewConsumer(cfg.Kafka, kafka.TopicJobSubmitted, logger)
		g.Go(func() error {
			defer consumer.Close()
			return consumer.Run(gctx, worker.Handle)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("worker pool failed", logging.Err(err))
	}
	logger.Info("worker stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
