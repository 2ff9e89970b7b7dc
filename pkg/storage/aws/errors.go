// File: pkg/storage/aws/errors.go
package aws

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"bucketctl/pkg/storage"
)

// Wraps an SDK error with the matching storage sentinel
func convertAWSError(err error) error {
	if err == nil {
		return nil
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return storage.Classify("NoSuchBucket", err)
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return storage.Classify("NoSuchKey", err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return storage.Classify(apiErr.ErrorCode(), err)
	}

	return err
}
