// File: pkg/storage/aws/buckets.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

const usEast1 = "us-east-1"

func (s *AWSStorage) ListBuckets(ctx context.Context) ([]storage.Bucket, error) {
	s.logger.Debug("Starting AWS ListBuckets operation")

	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("error listing buckets: %w", convertAWSError(err))
	}

	buckets := make([]storage.Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, storage.Bucket{
			Name:      awssdk.ToString(b.Name),
			Provider:  common.AWS,
			Location:  awssdk.ToString(b.BucketRegion),
			CreatedAt: awssdk.ToTime(b.CreationDate),
		})
	}
	return buckets, nil
}

// An empty location creates the bucket in the client's default region without a location constraint
func (s *AWSStorage) CreateBucket(ctx context.Context, bucketName string, location string) error {
	s.logger.Debug("Starting AWS CreateBucket operation", "bucket", bucketName, "location", location)

	input := &s3.CreateBucketInput{
		Bucket: awssdk.String(bucketName),
	}

	var optFns []func(*s3.Options)
	if location != "" {
		// us-east-1 is the implicit location; S3 rejects it as an explicit constraint
		if location != usEast1 {
			input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(location),
			}
		}
		optFns = append(optFns, func(o *s3.Options) {
			o.Region = location
		})
	}

	if _, err := s.client.CreateBucket(ctx, input, optFns...); err != nil {
		return fmt.Errorf("failed to create bucket: %w", convertAWSError(err))
	}
	return nil
}

func (s *AWSStorage) DeleteBucket(ctx context.Context, bucketName string) error {
	s.logger.Debug("Starting AWS DeleteBucket operation", "bucket", bucketName)

	_, err := s.client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: awssdk.String(bucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete bucket: %w", convertAWSError(err))
	}
	return nil
}
