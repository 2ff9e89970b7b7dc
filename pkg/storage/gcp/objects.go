// File: pkg/storage/gcp/objects.go
package gcp

import (
	"context"
	"fmt"
	"io"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"bucketctl/pkg/storage"
)

// Reads a single page of objects; later pages are never requested
func (g *GCPStorage) ListObjects(ctx context.Context, bucketName string) ([]storage.Object, error) {
	g.logger.Debug("Starting GCP ListObjects operation", "bucket", bucketName)

	var page []*gcpstorage.ObjectAttrs
	pager := iterator.NewPager(g.client.Bucket(bucketName).Objects(ctx, nil), storage.MaxListKeys, "")
	nextToken, err := pager.NextPage(&page)
	if err != nil {
		return nil, fmt.Errorf("error iterating objects: %w", convertGCPError(opListObjects, err))
	}
	if nextToken != "" {
		g.logger.Debug("Object listing truncated to a single page", "bucket", bucketName, "count", len(page))
	}

	objects := make([]storage.Object, 0, len(page))
	for _, attrs := range page {
		objects = append(objects, mapObjectAttributes(attrs))
	}
	return objects, nil
}

func (g *GCPStorage) PutObject(ctx context.Context, bucketName, objectKey string, body io.Reader, size int64, contentType string) error {
	g.logger.Debug("Starting GCP PutObject operation", "bucket", bucketName, "object", objectKey, "size", size)

	// Cancelling the writer's context is the only way to abandon a partial upload
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.client.Bucket(bucketName).Object(objectKey).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("failed to upload object: %w", convertGCPError(opPutObject, err))
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to upload object: %w", convertGCPError(opPutObject, err))
	}
	return nil
}

func (g *GCPStorage) GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error) {
	g.logger.Debug("Starting GCP GetObject operation", "bucket", bucketName, "object", objectKey)

	r, err := g.client.Bucket(bucketName).Object(objectKey).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", convertGCPError(opGetObject, err))
	}
	return r, nil
}

func (g *GCPStorage) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	g.logger.Debug("Starting GCP DeleteObject operation", "bucket", bucketName, "object", objectKey)

	if err := g.client.Bucket(bucketName).Object(objectKey).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object: %w", convertGCPError(opDeleteObject, err))
	}
	return nil
}

func (g *GCPStorage) CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	g.logger.Debug("Starting GCP CopyObject operation", "src_bucket", srcBucket, "src_object", srcKey, "dest_bucket", destBucket, "dest_object", destKey)

	src := g.client.Bucket(srcBucket).Object(srcKey)
	dst := g.client.Bucket(destBucket).Object(destKey)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return fmt.Errorf("failed to copy object: %w", convertGCPError(opCopyObject, err))
	}
	return nil
}
