package presigned

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"
)

type fakePresigner struct {
	calls      int
	lastExpiry time.Duration
	err        error
}

func (p *fakePresigner) PresignedGetObject(ctx context.Context, bucket, object string, expiry time.Duration, params url.Values) (*url.URL, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.calls++
	p.lastExpiry = expiry
	return url.Parse(fmt.Sprintf("https://store.example/%s/%s?X-Amz-Expires=%d", bucket, object, int(expiry.Seconds())))
}

func TestGenerateGetURLUsesDefaultTTL(t *testing.T) {
	client := &fakePresigner{}
	svc := NewService(client, time.Hour)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	signed, err := svc.GenerateGetURL(context.Background(), "resumes", "resume-1.pdf", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if signed.URL != "https://store.example/resumes/resume-1.pdf?X-Amz-Expires=3600" {
		t.Fatalf("unexpected url: %s", signed.URL)
	}
	if client.lastExpiry != time.Hour {
		t.Fatalf("expected default ttl, got %s", client.lastExpiry)
	}
	if !signed.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", signed.ExpiresAt)
	}
}

func TestGenerateGetURLStartsExpiryWindowAtCallTime(t *testing.T) {
	client := &fakePresigner{}
	svc := NewService(client, time.Hour)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	first, err := svc.GenerateGetURL(context.Background(), "b", "o", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now = now.Add(10 * time.Minute)
	second, err := svc.GenerateGetURL(context.Background(), "b", "o", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.calls != 2 {
		t.Fatalf("expected the presigner to be called per request, got %d calls", client.calls)
	}
	if got := second.ExpiresAt.Sub(first.ExpiresAt); got != 10*time.Minute {
		t.Fatalf("expected expiry to move with the clock, moved %s", got)
	}
}

func TestGenerateGetURLClampsTTL(t *testing.T) {
	client := &fakePresigner{}
	svc := NewService(client, 365*24*time.Hour)

	if svc.TTL() != MaxTTL {
		t.Fatalf("expected service ttl clamped to %s, got %s", MaxTTL, svc.TTL())
	}

	if _, err := svc.GenerateGetURL(context.Background(), "b", "o", time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastExpiry != time.Second {
		t.Fatalf("expected ttl raised to 1s, got %s", client.lastExpiry)
	}
}

func TestGenerateGetURL_InvalidTarget(t *testing.T) {
	svc := NewService(&fakePresigner{}, time.Minute)

	if _, err := svc.GenerateGetURL(context.Background(), "", "file", 0); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestGenerateGetURLPropagatesError(t *testing.T) {
	svc := NewService(&fakePresigner{err: errors.New("boom")}, time.Minute)

	if _, err := svc.GenerateGetURL(context.Background(), "b", "o", 0); err == nil {
		t.Fatalf("expected error from presigner")
	}
}
