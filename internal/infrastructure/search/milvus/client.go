// Package milvus implements the ligand descriptor similarity index on top of
// a Milvus collection.
package milvus

import (
	"context"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

// clientFactory allows the SDK constructor to be swapped out in tests.
var clientFactory = client.NewClient

const connectTimeout = 10 * time.Second

// Client wraps the Milvus SDK connection.
type Client struct {
	milvus client.Client
	logger logging.Logger
}

// NewClient connects to Milvus using the configured address and database.
func NewClient(ctx context.Context, cfg config.MilvusConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Addr == "" {
		return nil, errors.New(errors.ErrCodeValidation, "milvus addr is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	mc, err := clientFactory(connectCtx, client.Config{
		Address: cfg.Addr,
		DBName:  cfg.DBName,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to connect to milvus")
	}

	logger.Info("milvus connected", logging.String("addr", cfg.Addr))
	return &Client{milvus: mc, logger: logger.Named("milvus")}, nil
}

// Raw exposes the underlying SDK client.
func (c *Client) Raw() client.Client {
	return c.milvus
}

// Ping verifies the server answers health checks.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.milvus.CheckHealth(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "milvus health check failed")
	}
	return nil
}

// Close tears the connection down.
func (c *Client) Close() error {
	return c.milvus.Close()
}
