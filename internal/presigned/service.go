package presigned

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// MaxTTL is the longest expiry accepted by SigV4 presigning.
const MaxTTL = 7 * 24 * time.Hour

// ErrInvalidTarget is returned when the bucket or object name is empty.
var ErrInvalidTarget = errors.New("presign: bucket and object are required")

// Presigner issues GET URLs. *minio.Client satisfies it directly.
type Presigner interface {
	PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// SignedURL is a bearer URL granting read access until ExpiresAt.
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// Service mints read URLs with a bounded TTL.
type Service struct {
	client  Presigner
	ttl     time.Duration
	nowFunc func() time.Time
}

// NewService builds a Service whose default TTL is ttl, clamped to (0, MaxTTL].
func NewService(client Presigner, ttl time.Duration) *Service {
	return &Service{
		client:  client,
		ttl:     clampTTL(ttl, MaxTTL),
		nowFunc: time.Now,
	}
}

// TTL returns the default expiry applied by GenerateGetURL.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateGetURL signs a GET URL for object whose expiry window starts now.
// A non-positive ttl selects the service default. SigV4 output is
// deterministic per second, so calls within the same second may return the
// same URL.
func (s *Service) GenerateGetURL(ctx context.Context, bucket, object string, ttl time.Duration) (SignedURL, error) {
	if bucket == "" || object == "" {
		return SignedURL{}, ErrInvalidTarget
	}
	ttl = clampTTL(ttl, s.ttl)

	issuedAt := s.nowFunc()
	u, err := s.client.PresignedGetObject(ctx, bucket, object, ttl, make(url.Values))
	if err != nil {
		return SignedURL{}, err
	}

	return SignedURL{URL: u.String(), ExpiresAt: issuedAt.Add(ttl)}, nil
}

func clampTTL(ttl, fallback time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = fallback
	}
	if ttl <= 0 || ttl > MaxTTL {
		return MaxTTL
	}
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}
