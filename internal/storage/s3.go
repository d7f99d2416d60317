package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/config"
)

// NewS3Client builds an AWS S3 client. A non-empty endpoint switches the
// client to path-style addressing against an S3-compatible service.
func NewS3Client(ctx context.Context, cfg config.StorageConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg))
			o.UsePathStyle = true
		}
	})
	return client, nil
}

func endpointURL(cfg config.StorageConfig) string {
	if hasScheme(cfg.Endpoint) {
		return cfg.Endpoint
	}
	if cfg.UseSSL {
		return "https://" + cfg.Endpoint
	}
	return "http://" + cfg.Endpoint
}

func hasScheme(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}

// S3Admin implements bucket.Admin on top of the AWS SDK.
type S3Admin struct {
	client *s3.Client
	region string
}

// NewS3Admin wraps client for bucket provisioning.
func NewS3Admin(client *s3.Client, region string) *S3Admin {
	return &S3Admin{client: client, region: region}
}

// ListBuckets returns the names of all buckets visible to the credentials.
func (a *S3Admin) ListBuckets(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultObjectStoreTimeout)
	defer cancel()

	out, err := a.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}

// MakeBucket creates a private bucket and records its admission policy as tags.
func (a *S3Admin) MakeBucket(ctx context.Context, policy bucket.Policy) error {
	ctx, cancel := context.WithTimeout(ctx, defaultObjectStoreTimeout)
	defer cancel()

	input := &s3.CreateBucketInput{Bucket: aws.String(policy.Name)}
	// us-east-1 rejects an explicit location constraint
	if a.region != "" && a.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(a.region),
		}
	}
	if _, err := a.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("create bucket %q: %w", policy.Name, err)
	}

	_, err := a.client.PutBucketTagging(ctx, &s3.PutBucketTaggingInput{
		Bucket:  aws.String(policy.Name),
		Tagging: &types.Tagging{TagSet: tagSet(policy.Tags())},
	})
	if err != nil {
		return fmt.Errorf("tag bucket %q: %w", policy.Name, err)
	}
	return nil
}

func tagSet(m map[string]string) []types.Tag {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		set = append(set, types.Tag{Key: aws.String(k), Value: aws.String(m[k])})
	}
	return set
}
