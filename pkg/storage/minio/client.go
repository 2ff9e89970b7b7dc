// File: pkg/storage/minio/client.go
package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bucketctl/internal/config"
	"bucketctl/internal/provider/registry"
	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

func init() {
	registry.RegisterProvider("minio", registry.ProviderRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
		ConfigHint:  "minio.endpoint",
	})
}

func isConfigured(cfg *config.Config) bool {
	return cfg.MinIO != nil && cfg.MinIO.Endpoint != ""
}

func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("MinIO configuration missing or incomplete")
	}
	return NewMinIOStorage(*cfg.MinIO, logger)
}

// minioAPI is the subset of *minio.Client this package calls
type minioAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	RemoveBucket(ctx context.Context, bucketName string) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
}

var _ minioAPI = (*minio.Client)(nil)

type MinIOStorage struct {
	client minioAPI
	region string
	logger *slog.Logger
}

var _ storage.Storage = (*MinIOStorage)(nil)

// Credentials are read from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY or MINIO_ROOT_USER/MINIO_ROOT_PASSWORD
func NewMinIOStorage(cfg config.MinIOConfig, logger *slog.Logger) (*MinIOStorage, error) {
	endpoint, secure := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
		}),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return newMinIOStorageWithClient(client, cfg.Region, logger), nil
}

func newMinIOStorageWithClient(client minioAPI, region string, logger *slog.Logger) *MinIOStorage {
	return &MinIOStorage{client: client, region: region, logger: logger}
}

// An explicit scheme in the endpoint wins over the use_ssl setting
func normalizeEndpoint(endpoint string, useSSL bool) (string, bool) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return endpoint, useSSL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, useSSL
	}
	return u.Host, u.Scheme == "https"
}

func (m *MinIOStorage) ProviderName() common.Provider {
	return common.MinIO
}

// The MinIO client holds no resources that need releasing
func (m *MinIOStorage) Close() error {
	return nil
}

func convertMinIOError(err error) error {
	if err == nil {
		return nil
	}
	return storage.Classify(minio.ToErrorResponse(err).Code, err)
}
