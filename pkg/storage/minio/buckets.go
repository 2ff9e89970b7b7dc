// File: pkg/storage/minio/buckets.go
package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"

	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

func (m *MinIOStorage) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	m.logger.Debug("Starting MinIO ListBuckets operation")

	infos, err := m.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing buckets: %w", convertMinIOError(err))
	}

	buckets := make([]storage.Bucket, 0, len(infos))
	for _, info := range infos {
		buckets = append(buckets, storage.Bucket{
			Name:      info.Name,
			Provider:  common.MinIO,
			Location:  m.region,
			CreatedAt: info.CreationDate,
		})
	}
	return buckets, nil
}

// An empty location falls back to the client's configured region
func (m *MinIOStorage) CreateBucket(ctx context.Context, bucketName string, location string) error {
	m.logger.Debug("Starting MinIO CreateBucket operation", "bucket", bucketName, "location", location)

	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", convertMinIOError(err))
	}
	return nil
}

func (m *MinIOStorage) DeleteBucket(ctx context.Context, bucketName string) error {
	m.logger.Debug("Starting MinIO DeleteBucket operation", "bucket", bucketName)

	if err := m.client.RemoveBucket(ctx, bucketName); err != nil {
		return fmt.Errorf("failed to delete bucket: %w", convertMinIOError(err))
	}
	return nil
}
