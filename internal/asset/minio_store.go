package asset

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sarvaliya/folio/internal/presigned"
)

type minioClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinIOStore adapts minio.Client to the ObjectStore interface.
type MinIOStore struct {
	client minioClient
	signer *presigned.Service
}

// NewMinIOStore constructs an adapter.
func NewMinIOStore(client minioClient, signer *presigned.Service) *MinIOStore {
	return &MinIOStore{client: client, signer: signer}
}

func (s *MinIOStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *MinIOStore) Sign(ctx context.Context, bucket, key string, ttl time.Duration) (presigned.SignedURL, error) {
	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return presigned.SignedURL{}, fmt.Errorf("sign %q: %w", key, ErrObjectNotFound)
		}
		return presigned.SignedURL{}, fmt.Errorf("stat object %q: %w", key, err)
	}

	signed, err := s.signer.GenerateGetURL(ctx, bucket, key, ttl)
	if err != nil {
		return presigned.SignedURL{}, fmt.Errorf("presign %q: %w", key, err)
	}
	return signed, nil
}

func (s *MinIOStore) Delete(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}
