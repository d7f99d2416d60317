package bucket

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Admin is the slice of the object store needed to manage buckets.
type Admin interface {
	ListBuckets(ctx context.Context) ([]string, error)
	MakeBucket(ctx context.Context, policy Policy) error
}

// Service holds the configured bucket policies and provisions them on demand.
type Service struct {
	admin    Admin
	policies []Policy
	log      *zap.Logger
}

// NewService constructs a bucket service.
func NewService(admin Admin, log *zap.Logger, policies ...Policy) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		admin:    admin,
		policies: policies,
		log:      log,
	}
}

// Policies returns the configured policies in declaration order.
func (s *Service) Policies() []Policy {
	return slices.Clone(s.policies)
}

// Policy looks up the policy for a bucket kind.
func (s *Service) Policy(kind Kind) (Policy, error) {
	for _, p := range s.policies {
		if p.Kind == kind {
			return p, nil
		}
	}
	return Policy{}, ErrBucketNotFound
}

// Provision lists existing buckets and creates any configured bucket that is
// missing. Existing buckets are left untouched, so repeated calls are safe.
func (s *Service) Provision(ctx context.Context) error {
	existing, err := s.admin.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("%w: list buckets: %w", ErrProvisionFailed, err)
	}

	var errs []error
	for _, p := range s.policies {
		if slices.Contains(existing, p.Name) {
			continue
		}
		if err := s.admin.MakeBucket(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("create bucket %q: %w", p.Name, err))
			continue
		}
		s.log.Info("created bucket", zap.String("bucket", p.Name), zap.String("kind", string(p.Kind)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrProvisionFailed, errors.Join(errs...))
	}
	return nil
}

// Ping checks that the object store answers bucket listings.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.admin.ListBuckets(ctx)
	return err
}
