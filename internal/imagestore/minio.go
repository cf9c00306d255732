// Package imagestore uploads report photos to an S3-compatible bucket and
// hands back the public URL embedded in the final result.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	useSSL          bool
	publicBaseURL   string
}

func newConfig(opts ...MinioOpts) *minioConfig {
	cfg := &minioConfig{
		bucket: "flytipping-images",
		useSSL: false,
	}

	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

type MinioStore struct {
	cfg    *minioConfig
	client *minio.Client
}

func NewMinioStore(opts ...MinioOpts) (*MinioStore, error) {
	cfg := newConfig(opts...)

	minioClient, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioStore{cfg: cfg, client: minioClient}, nil
}

// Put uploads the image and returns its public URL. Objects are grouped by
// month so the bucket stays browsable.
func (s *MinioStore) Put(ctx context.Context, image []byte) (string, error) {
	now := time.Now().UTC()
	objectName := fmt.Sprintf("%s/flytip_%s_%s.jpg",
		now.Format("2006-01"),
		now.Format("20060102_150405"),
		uuid.NewString()[:8],
	)

	_, err := s.client.PutObject(ctx, s.cfg.bucket, objectName, bytes.NewReader(image), int64(len(image)), minio.PutObjectOptions{
		ContentType:  "image/jpeg",
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", errors.Wrapf(err, "uploading %s", objectName)
	}

	return s.publicURL(objectName), nil
}

func (s *MinioStore) publicURL(objectName string) string {
	if s.cfg.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.publicBaseURL, s.cfg.bucket, objectName)
	}

	scheme := "http"
	if s.cfg.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.endpoint, s.cfg.bucket, objectName)
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithAccessKey(accessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) MinioOpts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}

func WithPublicBaseURL(baseURL string) MinioOpts {
	return func(c *minioConfig) {
		c.publicBaseURL = baseURL
	}
}
