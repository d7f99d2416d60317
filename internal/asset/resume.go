package asset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sarvaliya/folio/internal/kv"
	"github.com/sarvaliya/folio/internal/metrics"
	"github.com/sarvaliya/folio/internal/presigned"
	"go.uber.org/zap"
)

// ResumePointerKey is the KV key holding the current resume pointer.
const ResumePointerKey = "resume_info"

// uploadedAtLayout matches the millisecond UTC timestamps existing pointers carry.
const uploadedAtLayout = "2006-01-02T15:04:05.000Z"

// ResumePointer is the stored record of the current resume.
type ResumePointer struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	UploadedAt   string `json:"uploadedAt"`
	SignedURL    string `json:"signedUrl"`
}

// ResumeInfo is the public view of the current resume.
type ResumeInfo struct {
	HasResume  bool   `json:"hasResume"`
	URL        string `json:"url,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// ResumeManager owns the resume pointer. Concurrent uploads race on the
// pointer and the last write wins; the loser's object stays in the bucket.
type ResumeManager struct {
	store   kv.Store
	objects ObjectStore
	bucket  string
	ttl     time.Duration
	log     *zap.Logger
	nowFunc func() time.Time
}

// NewResumeManager constructs a manager for resumes kept in bucket.
func NewResumeManager(store kv.Store, objects ObjectStore, bucket string, ttl time.Duration, log *zap.Logger) *ResumeManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResumeManager{
		store:   store,
		objects: objects,
		bucket:  bucket,
		ttl:     ttl,
		log:     log,
		nowFunc: time.Now,
	}
}

// RecordUpload signs the freshly stored object and replaces the pointer.
// The previous resume object is not removed.
func (m *ResumeManager) RecordUpload(ctx context.Context, key, originalName string) (presigned.SignedURL, error) {
	signed, err := m.objects.Sign(ctx, m.bucket, key, m.ttl)
	if err != nil {
		return presigned.SignedURL{}, &StorageError{Op: OpSign, Err: err}
	}

	pointer := ResumePointer{
		FileName:     key,
		OriginalName: originalName,
		UploadedAt:   m.nowFunc().UTC().Format(uploadedAtLayout),
		SignedURL:    signed.URL,
	}
	if err := m.save(ctx, pointer); err != nil {
		return presigned.SignedURL{}, err
	}
	return signed, nil
}

// Current returns the resume with a freshly signed URL and writes that URL
// back to the pointer. Any failure reports no resume.
func (m *ResumeManager) Current(ctx context.Context) ResumeInfo {
	pointer, ok, err := m.load(ctx)
	if err != nil {
		m.log.Warn("resume pointer unreadable", zap.Error(err))
		return ResumeInfo{}
	}
	if !ok {
		return ResumeInfo{}
	}

	signed, err := m.objects.Sign(ctx, m.bucket, pointer.FileName, m.ttl)
	if err != nil {
		metrics.RecordResumeRefresh("failed")
		m.log.Warn("resume url refresh failed",
			zap.String("key", pointer.FileName),
			zap.Error(err),
		)
		return ResumeInfo{}
	}
	metrics.RecordResumeRefresh("ok")
	m.log.Debug("resume url refreshed",
		zap.String("key", pointer.FileName),
		zap.Time("expires_at", signed.ExpiresAt),
	)

	pointer.SignedURL = signed.URL
	if err := m.save(ctx, pointer); err != nil {
		// The fresh URL is still valid for this response.
		m.log.Warn("resume pointer write-back failed", zap.Error(err))
	}

	return ResumeInfo{
		HasResume:  true,
		URL:        signed.URL,
		FileName:   pointer.OriginalName,
		UploadedAt: pointer.UploadedAt,
	}
}

// Remove deletes the current resume object, then the pointer. A storage
// failure leaves the pointer in place. Removing with no pointer succeeds.
func (m *ResumeManager) Remove(ctx context.Context) error {
	pointer, ok, err := m.load(ctx)
	switch {
	case errors.Is(err, errCorruptPointer):
		m.log.Warn("dropping corrupt resume pointer", zap.Error(err))
	case err != nil:
		return err
	case !ok:
		return nil
	default:
		if err := m.objects.Delete(ctx, m.bucket, pointer.FileName); err != nil {
			return &StorageError{Op: OpDelete, Err: err}
		}
	}

	if err := m.store.Delete(ctx, ResumePointerKey); err != nil {
		return fmt.Errorf("delete resume pointer: %w", err)
	}
	return nil
}

func (m *ResumeManager) load(ctx context.Context) (ResumePointer, bool, error) {
	raw, err := m.store.Get(ctx, ResumePointerKey)
	if errors.Is(err, kv.ErrNotFound) {
		return ResumePointer{}, false, nil
	}
	if err != nil {
		return ResumePointer{}, false, fmt.Errorf("read resume pointer: %w", err)
	}

	var pointer ResumePointer
	if err := json.Unmarshal(raw, &pointer); err != nil {
		return ResumePointer{}, false, fmt.Errorf("%w: %v", errCorruptPointer, err)
	}
	if pointer.FileName == "" {
		return ResumePointer{}, false, fmt.Errorf("%w: missing fileName", errCorruptPointer)
	}
	return pointer, true, nil
}

func (m *ResumeManager) save(ctx context.Context, pointer ResumePointer) error {
	raw, err := json.Marshal(pointer)
	if err != nil {
		return fmt.Errorf("encode resume pointer: %w", err)
	}
	if err := m.store.Set(ctx, ResumePointerKey, raw); err != nil {
		return fmt.Errorf("write resume pointer: %w", err)
	}
	return nil
}
