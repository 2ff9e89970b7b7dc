// File: pkg/storage/aws/objects.go
package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

// Issues a single ListObjectsV2 request; continuation tokens are not followed
func (s *AWSStorage) ListObjects(ctx context.Context, bucketName string) ([]storage.Object, error) {
	s.logger.Debug("Starting AWS ListObjects operation", "bucket", bucketName)

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  awssdk.String(bucketName),
		MaxKeys: awssdk.Int32(storage.MaxListKeys),
	})
	if err != nil {
		return nil, fmt.Errorf("error listing objects: %w", convertAWSError(err))
	}

	objects := make([]storage.Object, 0, len(out.Contents))
	for _, obj := range out.Contents {
		objects = append(objects, storage.Object{
			Key:          awssdk.ToString(obj.Key),
			Bucket:       bucketName,
			Provider:     common.AWS,
			Size:         awssdk.ToInt64(obj.Size),
			LastModified: awssdk.ToTime(obj.LastModified),
			ETag:         awssdk.ToString(obj.ETag),
		})
	}

	if awssdk.ToBool(out.IsTruncated) {
		s.logger.Debug("Object listing truncated to a single page", "bucket", bucketName, "count", len(objects))
	}
	return objects, nil
}

func (s *AWSStorage) PutObject(ctx context.Context, bucketName, objectKey string, body io.Reader, size int64, contentType string) error {
	s.logger.Debug("Starting AWS PutObject operation", "bucket", bucketName, "object", objectKey, "size", size)

	input := &s3.PutObjectInput{
		Bucket:        awssdk.String(bucketName),
		Key:           awssdk.String(objectKey),
		Body:          body,
		ContentLength: awssdk.Int64(size),
	}
	if contentType != "" {
		input.ContentType = awssdk.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object: %w", convertAWSError(err))
	}
	return nil
}

func (s *AWSStorage) GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error) {
	s.logger.Debug("Starting AWS GetObject operation", "bucket", bucketName, "object", objectKey)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(bucketName),
		Key:    awssdk.String(objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", convertAWSError(err))
	}
	return out.Body, nil
}

func (s *AWSStorage) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	s.logger.Debug("Starting AWS DeleteObject operation", "bucket", bucketName, "object", objectKey)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awssdk.String(bucketName),
		Key:    awssdk.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", convertAWSError(err))
	}
	return nil
}

func (s *AWSStorage) CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	s.logger.Debug("Starting AWS CopyObject operation", "src_bucket", srcBucket, "src_object", srcKey, "dest_bucket", destBucket, "dest_object", destKey)

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     awssdk.String(destBucket),
		Key:        awssdk.String(destKey),
		CopySource: awssdk.String(copySource(srcBucket, srcKey)),
	})
	if err != nil {
		return fmt.Errorf("failed to copy object: %w", convertAWSError(err))
	}
	return nil
}

// Builds the URL-encoded "bucket/key" CopySource value
func copySource(bucket, key string) string {
	return bucket + "/" + (&url.URL{Path: key}).EscapedPath()
}
