// File: internal/service/registry.go
package service

import (
	"context"
	"slices"

	"bucketctl/pkg/storage"
)

// Every read goes to the remote service; snapshots are never cached

func (s *StorageService) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	s.logger.Debug("Starting ListBuckets operation")

	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, s.transportFailure(ctx, "list buckets", err)
	}
	return buckets, nil
}

func (s *StorageService) ListBucketNames(ctx context.Context) ([]string, error) {
	buckets, err := s.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	return storage.BucketNames(buckets), nil
}

// Reports whether name is an exact element of the current bucket list
func (s *StorageService) BucketExists(ctx context.Context, name string) (bool, error) {
	names, err := s.ListBucketNames(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

func (s *StorageService) ListObjects(ctx context.Context, bucketName string) ([]storage.Object, error) {
	s.logger.Debug("Starting ListObjects operation", "bucket", bucketName)

	objects, err := s.client.ListObjects(ctx, bucketName)
	if err != nil {
		return nil, s.transportFailure(ctx, "list objects", err, "bucket", bucketName)
	}
	return objects, nil
}

// An empty bucket yields an empty, non-nil slice; a failed lookup yields nil
func (s *StorageService) ListObjectKeys(ctx context.Context, bucketName string) ([]string, error) {
	objects, err := s.ListObjects(ctx, bucketName)
	if err != nil {
		return nil, err
	}
	return storage.ObjectKeys(objects), nil
}
