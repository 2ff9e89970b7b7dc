// File: pkg/storage/storage.go
package storage

import (
	"context"
	"io"

	"bucketctl/pkg/common"
)

// MaxListKeys bounds a single ListObjects page across providers
const MaxListKeys = 1000

// Storage is the capability surface every object-storage provider exposes
// All calls block until the remote service answers; none of them retry
type Storage interface {
	ProviderName() common.Provider

	ListBuckets(ctx context.Context) ([]Bucket, error)
	// An empty location lets the provider pick its default region
	CreateBucket(ctx context.Context, bucketName, location string) error
	// Providers reject deleting a bucket that still holds objects
	DeleteBucket(ctx context.Context, bucketName string) error

	// Returns a single page of at most MaxListKeys objects
	ListObjects(ctx context.Context, bucketName string) ([]Object, error)
	PutObject(ctx context.Context, bucketName, objectKey string, body io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, bucketName, objectKey string) error
	// Overwrites the destination object if it already exists
	CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error

	Close() error
}
