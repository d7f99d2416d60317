package asset

import (
	"context"
	"io"
	"time"

	"github.com/sarvaliya/folio/internal/presigned"
)

// ObjectStore is the object storage capability used by the asset service.
//
// Put overwrites an existing key. Sign opens a fresh expiry window on every
// call and fails with ErrObjectNotFound when the object is absent, so a URL
// is never minted for a deleted asset. Delete of a missing key is not an error.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
	Sign(ctx context.Context, bucket, key string, ttl time.Duration) (presigned.SignedURL, error)
	Delete(ctx context.Context, bucket, key string) error
}
