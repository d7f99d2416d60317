package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sarvaliya/folio/internal/presigned"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store adapts the AWS SDK S3 client to the ObjectStore interface.
type S3Store struct {
	client s3API
	signer *presigned.Service
}

// NewS3Store constructs an adapter.
func NewS3Store(client s3API, signer *presigned.Service) *S3Store {
	return &S3Store{client: client, signer: signer}
}

func (s *S3Store) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *S3Store) Sign(ctx context.Context, bucket, key string, ttl time.Duration) (presigned.SignedURL, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return presigned.SignedURL{}, fmt.Errorf("sign %q: %w", key, ErrObjectNotFound)
		}
		return presigned.SignedURL{}, fmt.Errorf("head object %q: %w", key, err)
	}

	signed, err := s.signer.GenerateGetURL(ctx, bucket, key, ttl)
	if err != nil {
		return presigned.SignedURL{}, fmt.Errorf("presign %q: %w", key, err)
	}
	return signed, nil
}

func (s *S3Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// S3Presigner satisfies presigned.Presigner with the AWS SDK presign client.
type S3Presigner struct {
	client *s3.PresignClient
}

// NewS3Presigner wraps client for GET presigning.
func NewS3Presigner(client *s3.Client) *S3Presigner {
	return &S3Presigner{client: s3.NewPresignClient(client)}
}

func (p *S3Presigner) PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration, _ url.Values) (*url.URL, error) {
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, err
	}
	return url.Parse(req.URL)
}
