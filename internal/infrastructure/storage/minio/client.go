// Package minio stores export artifacts in S3-compatible object storage and
// hands out presigned download links.
package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

const ensureBucketTimeout = 10 * time.Second

// Client wraps the MinIO SDK plus the configured bucket.
type Client struct {
	minio  *minio.Client
	bucket string
	logger logging.Logger
}

// NewClient connects to the object store and makes sure the configured bucket
// exists.
func NewClient(ctx context.Context, cfg config.MinIOConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeValidation, "minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ErrCodeValidation, "minio bucket is required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create minio client")
	}

	c := &Client{minio: mc, bucket: cfg.Bucket, logger: logger.Named("minio")}
	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info("object storage ready",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket))
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ensureBucketTimeout)
	defer cancel()

	exists, err := c.minio.BucketExists(ctx, c.bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to check bucket")
	}
	if !exists {
		if err := c.minio.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrap(err, errors.ErrCodeStorageError, "failed to create bucket")
		}
	}
	return nil
}

// Raw exposes the underlying SDK client.
func (c *Client) Raw() *minio.Client {
	return c.minio
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// Ping checks reachability by probing the bucket.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.minio.BucketExists(ctx, c.bucket); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "object storage unreachable")
	}
	return nil
}
