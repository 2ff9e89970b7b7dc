// File: pkg/storage/gcp/buckets.go
package gcp

import (
	"context"
	"fmt"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"bucketctl/pkg/storage"
)

// Reads a single page of buckets for the configured project
func (g *GCPStorage) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	g.logger.Debug("Starting GCP ListBuckets operation")

	var page []*gcpstorage.BucketAttrs
	pager := iterator.NewPager(g.client.Buckets(ctx, g.projectID), storage.MaxListKeys, "")
	if _, err := pager.NextPage(&page); err != nil {
		return nil, fmt.Errorf("error listing buckets: %w", convertGCPError(opListBuckets, err))
	}

	buckets := make([]storage.Bucket, 0, len(page))
	for _, attrs := range page {
		buckets = append(buckets, mapBucketAttributes(attrs))
	}
	return buckets, nil
}

// An empty location lets GCS apply its default multi-region
func (g *GCPStorage) CreateBucket(ctx context.Context, bucketName string, location string) error {
	g.logger.Debug("Starting GCP CreateBucket operation", "bucket", bucketName, "location", location)

	var attrs *gcpstorage.BucketAttrs
	if location != "" {
		attrs = &gcpstorage.BucketAttrs{Location: location}
	}

	if err := g.client.Bucket(bucketName).Create(ctx, g.projectID, attrs); err != nil {
		return fmt.Errorf("failed to create bucket: %w", convertGCPError(opCreateBucket, err))
	}
	return nil
}

func (g *GCPStorage) DeleteBucket(ctx context.Context, bucketName string) error {
	g.logger.Debug("Starting GCP DeleteBucket operation", "bucket", bucketName)

	if err := g.client.Bucket(bucketName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete bucket: %w", convertGCPError(opDeleteBucket, err))
	}
	return nil
}
