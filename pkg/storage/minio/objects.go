// File: pkg/storage/minio/objects.go
package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

// Stops reading the listing channel after MaxListKeys entries
func (m *MinIOStorage) ListObjects(ctx context.Context, bucketName string) ([]storage.Object, error) {
	m.logger.Debug("Starting MinIO ListObjects operation", "bucket", bucketName)

	// Cancelling tells the client to stop fetching further pages
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := make([]storage.Object, 0)
	for info := range m.client.ListObjects(ctx, bucketName, minio.ListObjectsOptions{Recursive: true, MaxKeys: storage.MaxListKeys}) {
		if info.Err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", convertMinIOError(info.Err))
		}
		objects = append(objects, storage.Object{
			Key:          info.Key,
			Bucket:       bucketName,
			Provider:     common.MinIO,
			Size:         info.Size,
			LastModified: info.LastModified,
			ETag:         info.ETag,
		})
		if len(objects) == storage.MaxListKeys {
			m.logger.Debug("Object listing truncated to a single page", "bucket", bucketName)
			break
		}
	}
	return objects, nil
}

func (m *MinIOStorage) PutObject(ctx context.Context, bucketName, objectKey string, body io.Reader, size int64, contentType string) error {
	m.logger.Debug("Starting MinIO PutObject operation", "bucket", bucketName, "object", objectKey, "size", size)

	_, err := m.client.PutObject(ctx, bucketName, objectKey, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", convertMinIOError(err))
	}
	return nil
}

// GetObject on the MinIO client is lazy, so the object is stat'ed first to surface missing keys
func (m *MinIOStorage) GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error) {
	m.logger.Debug("Starting MinIO GetObject operation", "bucket", bucketName, "object", objectKey)

	if _, err := m.client.StatObject(ctx, bucketName, objectKey, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("failed to download object: %w", convertMinIOError(err))
	}

	obj, err := m.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", convertMinIOError(err))
	}
	return obj, nil
}

func (m *MinIOStorage) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	m.logger.Debug("Starting MinIO DeleteObject operation", "bucket", bucketName, "object", objectKey)

	if err := m.client.RemoveObject(ctx, bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", convertMinIOError(err))
	}
	return nil
}

func (m *MinIOStorage) CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	m.logger.Debug("Starting MinIO CopyObject operation", "src_bucket", srcBucket, "src_object", srcKey, "dest_bucket", destBucket, "dest_object", destKey)

	src := minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey}
	dst := minio.CopyDestOptions{Bucket: destBucket, Object: destKey}
	if _, err := m.client.CopyObject(ctx, dst, src); err != nil {
		return fmt.Errorf("failed to copy object: %w", convertMinIOError(err))
	}
	return nil
}
