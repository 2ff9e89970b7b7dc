// File: pkg/storage/errors.go
package storage

import (
	"errors"
	"fmt"
)

// Provider adapters wrap their SDK errors with one of these sentinels so callers
// can branch with errors.Is without knowing which SDK produced the failure
var (
	ErrBucketNotFound      = errors.New("bucket not found")
	ErrObjectNotFound      = errors.New("object not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrBucketNotEmpty      = errors.New("bucket not empty")
	ErrBucketAlreadyExists = errors.New("bucket already exists")
)

// Maps an S3-style error code onto a sentinel, or nil when the code is not classified
func SentinelForCode(code string) error {
	switch code {
	case "NoSuchBucket":
		return ErrBucketNotFound
	case "NoSuchKey", "NotFound":
		return ErrObjectNotFound
	case "AccessDenied", "AllAccessDisabled", "Forbidden":
		return ErrAccessDenied
	case "BucketNotEmpty":
		return ErrBucketNotEmpty
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return ErrBucketAlreadyExists
	default:
		return nil
	}
}

// Wraps err with the sentinel for code while keeping the original error in the chain
func Classify(code string, err error) error {
	if err == nil {
		return nil
	}
	if sentinel := SentinelForCode(code); sentinel != nil && !errors.Is(err, sentinel) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
