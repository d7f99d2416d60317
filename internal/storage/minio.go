package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/tags"
	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/config"
)

const defaultObjectStoreTimeout = 5 * time.Second

// NewMinIOClient establishes a MinIO client using the provided configuration.
func NewMinIOClient(cfg config.StorageConfig) (*minio.Client, error) {
	endpoint := cfg.Endpoint
	if !strings.Contains(endpoint, ":") {
		// default to MinIO API port when not supplied explicitly
		endpoint = fmt.Sprintf("%s:9000", endpoint)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return client, nil
}

// MinIOAdmin implements bucket.Admin on top of a MinIO client.
type MinIOAdmin struct {
	client *minio.Client
	region string
}

// NewMinIOAdmin wraps client for bucket provisioning.
func NewMinIOAdmin(client *minio.Client, region string) *MinIOAdmin {
	return &MinIOAdmin{client: client, region: region}
}

// ListBuckets returns the names of all buckets visible to the credentials.
func (a *MinIOAdmin) ListBuckets(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultObjectStoreTimeout)
	defer cancel()

	infos, err := a.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, nil
}

// MakeBucket creates a private bucket and records its admission policy as tags.
func (a *MinIOAdmin) MakeBucket(ctx context.Context, policy bucket.Policy) error {
	ctx, cancel := context.WithTimeout(ctx, defaultObjectStoreTimeout)
	defer cancel()

	if err := a.client.MakeBucket(ctx, policy.Name, minio.MakeBucketOptions{Region: a.region}); err != nil {
		return fmt.Errorf("create bucket %q: %w", policy.Name, err)
	}

	bucketTags, err := tags.NewTags(policy.Tags(), false)
	if err != nil {
		return fmt.Errorf("build tags for %q: %w", policy.Name, err)
	}
	if err := a.client.SetBucketTagging(ctx, policy.Name, bucketTags); err != nil {
		return fmt.Errorf("tag bucket %q: %w", policy.Name, err)
	}

	return nil
}
