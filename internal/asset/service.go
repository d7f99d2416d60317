package asset

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/kv"
	"github.com/sarvaliya/folio/internal/metrics"
	"go.uber.org/zap"
)

// Upload outcomes reported to metrics.
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// UploadResult describes a stored asset.
type UploadResult struct {
	URL          string
	Key          string
	OriginalName string
	ContentType  string
	Size         int64
}

// Service manages resume and image uploads.
type Service struct {
	objects   ObjectStore
	resumes   *ResumeManager
	resumePol bucket.Policy
	imagePol  bucket.Policy
	ttl       time.Duration
	log       *zap.Logger
	nowFunc   func() time.Time
	tokenFunc func() string
}

// NewService constructs an asset service. Resume pointers are kept in pointers.
func NewService(objects ObjectStore, pointers kv.Store, resumePolicy, imagePolicy bucket.Policy, ttl time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		objects:   objects,
		resumes:   NewResumeManager(pointers, objects, resumePolicy.Name, ttl, log),
		resumePol: resumePolicy,
		imagePol:  imagePolicy,
		ttl:       ttl,
		log:       log,
		nowFunc:   time.Now,
		tokenFunc: randomToken,
	}
}

// Validate checks a declared upload against policy: type first, then size.
func Validate(policy bucket.Policy, contentType string, size int64) error {
	if !policy.AllowsType(contentType) {
		return &ValidationError{Reason: policy.TypeMessage}
	}
	if !policy.AllowsSize(size) {
		return &ValidationError{Reason: policy.SizeMessage}
	}
	return nil
}

// UploadResume stores a resume and makes it the current one.
func (s *Service) UploadResume(ctx context.Context, fileHeader *multipart.FileHeader) (UploadResult, error) {
	kind := string(bucket.KindResume)
	contentType, err := s.admit(s.resumePol, fileHeader)
	if err != nil {
		metrics.RecordUpload(kind, outcomeRejected)
		return UploadResult{}, err
	}

	key := ResumeKey(s.nowFunc(), fileHeader.Filename, contentType)
	if err := s.put(ctx, s.resumePol.Name, key, fileHeader, contentType); err != nil {
		metrics.RecordUpload(kind, outcomeFailed)
		return UploadResult{}, err
	}

	signed, err := s.resumes.RecordUpload(ctx, key, fileHeader.Filename)
	if err != nil {
		metrics.RecordUpload(kind, outcomeFailed)
		return UploadResult{}, err
	}

	metrics.RecordUpload(kind, outcomeOK)
	s.log.Info("resume uploaded",
		zap.String("key", key),
		zap.String("original_name", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
		zap.Time("url_expires_at", signed.ExpiresAt),
	)
	return UploadResult{
		URL:          signed.URL,
		Key:          key,
		OriginalName: fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
	}, nil
}

// UploadImage stores a portfolio image under a fresh key. No pointer is kept.
func (s *Service) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (UploadResult, error) {
	kind := string(bucket.KindImage)
	contentType, err := s.admit(s.imagePol, fileHeader)
	if err != nil {
		metrics.RecordUpload(kind, outcomeRejected)
		return UploadResult{}, err
	}

	key := ImageKey(s.nowFunc(), s.tokenFunc(), fileHeader.Filename, contentType)
	if err := s.put(ctx, s.imagePol.Name, key, fileHeader, contentType); err != nil {
		metrics.RecordUpload(kind, outcomeFailed)
		return UploadResult{}, err
	}

	signed, err := s.objects.Sign(ctx, s.imagePol.Name, key, s.ttl)
	if err != nil {
		metrics.RecordUpload(kind, outcomeFailed)
		return UploadResult{}, &StorageError{Op: OpSign, Err: err}
	}

	metrics.RecordUpload(kind, outcomeOK)
	s.log.Info("image uploaded",
		zap.String("key", key),
		zap.String("original_name", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
		zap.Time("url_expires_at", signed.ExpiresAt),
	)
	return UploadResult{
		URL:          signed.URL,
		Key:          key,
		OriginalName: fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
	}, nil
}

// DeleteImage removes an image by key. Unknown keys succeed.
func (s *Service) DeleteImage(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &ValidationError{Reason: msgNoFileName}
	}
	if err := s.objects.Delete(ctx, s.imagePol.Name, key); err != nil {
		return &StorageError{Op: OpDelete, Err: err}
	}
	s.log.Info("image deleted", zap.String("key", key))
	return nil
}

// ResumeInfo reports the current resume with a refreshed URL.
func (s *Service) ResumeInfo(ctx context.Context) ResumeInfo {
	return s.resumes.Current(ctx)
}

// RemoveResume deletes the current resume, if any.
func (s *Service) RemoveResume(ctx context.Context) error {
	if err := s.resumes.Remove(ctx); err != nil {
		return err
	}
	s.log.Info("resume removed")
	return nil
}

func (s *Service) admit(policy bucket.Policy, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", &ValidationError{Reason: msgNoFile}
	}
	contentType := mediaType(fileHeader.Header.Get("Content-Type"))
	if err := Validate(policy, contentType, fileHeader.Size); err != nil {
		return "", err
	}
	return contentType, nil
}

func (s *Service) put(ctx context.Context, bucketName, key string, fileHeader *multipart.FileHeader, contentType string) error {
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	if err := s.objects.Put(ctx, bucketName, key, file, fileHeader.Size, contentType); err != nil {
		return &StorageError{Op: OpPut, Err: err}
	}
	return nil
}
