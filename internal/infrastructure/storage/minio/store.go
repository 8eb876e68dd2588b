package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

// ArtifactStore persists export artifacts and produces time-limited download
// links for them.
type ArtifactStore interface {
	// Put uploads an artifact under key and returns its presigned download URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Get downloads an artifact. Returns ErrCodeArtifactNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an artifact is present.
	Exists(ctx context.Context, key string) (bool, error)

	// PresignedURL returns a fresh download link for an existing artifact.
	PresignedURL(ctx context.Context, key string) (string, error)
}

type artifactStore struct {
	client *Client
	expiry time.Duration
	logger logging.Logger
}

// NewArtifactStore builds an ArtifactStore on an established client.
func NewArtifactStore(client *Client, presignExpiry time.Duration, logger logging.Logger) ArtifactStore {
	if logger == nil {
		logger = logging.Default()
	}
	if presignExpiry <= 0 {
		presignExpiry = time.Hour
	}
	return &artifactStore{client: client, expiry: presignExpiry, logger: logger.Named("minio.store")}
}

func (s *artifactStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New(errors.ErrCodeValidation, "artifact key is required")
	}

	opts := minio.PutObjectOptions{ContentType: contentType}
	_, err := s.client.Raw().PutObject(ctx, s.client.Bucket(), key,
		bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeArtifactUpload, "failed to upload artifact")
	}

	s.logger.Debug("artifact uploaded",
		logging.String("key", key),
		logging.Int("size", len(data)))
	return s.PresignedURL(ctx, key)
}

func (s *artifactStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.Raw().GetObject(ctx, s.client.Bucket(), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to open artifact")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, errors.New(errors.ErrCodeArtifactNotFound, "artifact not found").WithDetail(key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read artifact")
	}
	return data, nil
}

func (s *artifactStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Raw().StatObject(ctx, s.client.Bucket(), key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat artifact")
	}
	return true, nil
}

func (s *artifactStore) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.Raw().PresignedGetObject(ctx, s.client.Bucket(), key, s.expiry, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to presign artifact url")
	}
	return u.String(), nil
}
