// File: internal/service/storage_service.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"

	"bucketctl/internal/diagnostics"
	"bucketctl/internal/localfs"
	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

type Options struct {
	Match MatchMode
	// Randomness for generated bucket names; nil uses a runtime seed
	NameSource rand.Source
}

// StorageService guards every mutating call on one provider client with the
// bucket and object lifecycle rules
type StorageService struct {
	client   storage.Storage
	files    *localfs.Files
	reporter *diagnostics.Reporter
	names    *NameGenerator
	match    MatchMode
	logger   *slog.Logger
}

func NewStorageService(client storage.Storage, files *localfs.Files, reporter *diagnostics.Reporter, logger *slog.Logger, opts Options) *StorageService {
	match := opts.Match
	if match == "" {
		match = MatchSubstring
	}

	return &StorageService{
		client:   client,
		files:    files,
		reporter: reporter,
		names:    NewNameGenerator(opts.NameSource),
		match:    match,
		logger:   logger.With("service", "StorageService", "provider", client.ProviderName()),
	}
}

func (s *StorageService) Provider() common.Provider {
	return s.client.ProviderName()
}

func (s *StorageService) Close() error {
	return s.client.Close()
}

// --- Bucket Operations ---

// The caller is expected to have run ValidateName; an empty region lets the provider pick its default
func (s *StorageService) CreateBucket(ctx context.Context, bucketName, region string) error {
	s.logger.Debug("Starting CreateBucket operation", "bucket", bucketName, "region", region)

	if bucketName == "" {
		return &ValidationError{Name: bucketName, Err: ErrInvalidName}
	}

	if err := s.client.CreateBucket(ctx, bucketName, region); err != nil {
		return s.transportFailure(ctx, "create bucket", err, "bucket", bucketName)
	}
	return nil
}

// Validates first+last, then creates a bucket under a generated name derived from them
func (s *StorageService) CreateNamedBucket(ctx context.Context, first, last, region string) (string, error) {
	if err := s.ValidateName(ctx, first+last); err != nil {
		return "", err
	}

	bucketName := s.GenerateBucketName(first, last)
	if err := s.CreateBucket(ctx, bucketName, region); err != nil {
		return "", err
	}
	return bucketName, nil
}

// Refuses non-empty buckets without contacting the delete endpoint
func (s *StorageService) DeleteBucket(ctx context.Context, bucketName string) error {
	s.logger.Debug("Starting DeleteBucket operation", "bucket", bucketName)

	if err := s.requireBucket(ctx, "delete bucket", bucketName); err != nil {
		return err
	}

	keys, err := s.ListObjectKeys(ctx, bucketName)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return precondition("delete bucket", bucketName, ErrBucketInUse)
	}

	if err := s.client.DeleteBucket(ctx, bucketName); err != nil {
		// An object written after the emptiness check is still a precondition failure
		if errors.Is(err, storage.ErrBucketNotEmpty) {
			return precondition("delete bucket", bucketName, ErrBucketInUse)
		}
		return s.transportFailure(ctx, "delete bucket", err, "bucket", bucketName)
	}
	return nil
}

// --- Object Operations ---

// Stores the local upload source under objectName, or under the source's base name when empty.
// Returns the key the object was stored under.
func (s *StorageService) Upload(ctx context.Context, bucketName, objectName string) (string, error) {
	if objectName == "" {
		objectName = s.files.UploadSourceName()
	}
	s.logger.Debug("Starting Upload operation", "bucket", bucketName, "object", objectName)

	if err := s.requireBucket(ctx, "upload", bucketName); err != nil {
		return "", err
	}

	src, err := s.files.OpenUploadSource()
	if err != nil {
		return "", s.transportFailure(ctx, "upload", err, "bucket", bucketName, "object", objectName)
	}
	defer src.Close()

	if err := s.client.PutObject(ctx, bucketName, objectName, src, src.Size, src.ContentType); err != nil {
		return "", s.transportFailure(ctx, "upload", err, "bucket", bucketName, "object", objectName)
	}
	return objectName, nil
}

func (s *StorageService) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	s.logger.Debug("Starting DeleteObject operation", "bucket", bucketName, "object", objectKey)

	if err := s.requireObject(ctx, "delete object", bucketName, objectKey); err != nil {
		return err
	}

	if err := s.client.DeleteObject(ctx, bucketName, objectKey); err != nil {
		return s.transportFailure(ctx, "delete object", err, "bucket", bucketName, "object", objectKey)
	}
	return nil
}

// Copies srcKey into destBucket under destKey, or under srcKey when destKey is empty.
// Same-bucket copies are refused before any remote call.
func (s *StorageService) CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	if destKey == "" {
		destKey = srcKey
	}
	s.logger.Debug("Starting CopyObject operation", "src_bucket", srcBucket, "src_object", srcKey, "dest_bucket", destBucket, "dest_object", destKey)

	if srcBucket == destBucket {
		return precondition("copy object", destBucket, ErrSameBucket)
	}
	if err := s.requireObject(ctx, "copy object", srcBucket, srcKey); err != nil {
		return err
	}
	if err := s.requireBucket(ctx, "copy object", destBucket); err != nil {
		return err
	}

	if err := s.client.CopyObject(ctx, srcBucket, srcKey, destBucket, destKey); err != nil {
		return s.transportFailure(ctx, "copy object", err, "src_bucket", srcBucket, "object", srcKey, "dest_bucket", destBucket)
	}
	return nil
}

// Fetches the object into the fixed local download target and returns its path
func (s *StorageService) Download(ctx context.Context, bucketName, objectKey string) (string, error) {
	s.logger.Debug("Starting Download operation", "bucket", bucketName, "object", objectKey)

	if err := s.requireObject(ctx, "download", bucketName, objectKey); err != nil {
		return "", err
	}

	body, err := s.client.GetObject(ctx, bucketName, objectKey)
	if err != nil {
		return "", s.transportFailure(ctx, "download", err, "bucket", bucketName, "object", objectKey)
	}
	defer body.Close()

	written, err := s.files.WriteDownloadTarget(body)
	if err != nil {
		return "", s.transportFailure(ctx, "download", err, "bucket", bucketName, "object", objectKey)
	}

	s.logger.Debug("Object downloaded", "target", s.files.DownloadTarget(), "bytes", written)
	return s.files.DownloadTarget(), nil
}

func (s *StorageService) requireBucket(ctx context.Context, op, bucketName string) error {
	exists, err := s.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return precondition(op, bucketName, ErrBucketMissing)
	}
	return nil
}

func (s *StorageService) requireObject(ctx context.Context, op, bucketName, objectKey string) error {
	keys, err := s.ListObjectKeys(ctx, bucketName)
	if err != nil {
		return err
	}
	if !slices.Contains(keys, objectKey) {
		return precondition(op, objectKey, ErrObjectMissing)
	}
	return nil
}

// Writes the failure to the diagnostic sink once and wraps it for the caller
func (s *StorageService) transportFailure(ctx context.Context, op string, err error, attrs ...any) error {
	s.logger.Debug("Operation failed", append([]any{"op", op, "error", err}, attrs...)...)
	s.reporter.Report(ctx, op, err, attrs...)
	return &TransportError{Op: op, Err: err}
}
