package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sarvaliya/folio/internal/asset"
	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/config"
	"github.com/sarvaliya/folio/internal/kv"
	"github.com/sarvaliya/folio/internal/presigned"
	"github.com/sarvaliya/folio/internal/storage"
	"go.uber.org/zap"
)

type objectBackend struct {
	store asset.ObjectStore
	admin bucket.Admin
	// signedURLTTL is the configured TTL after presigned clamping.
	signedURLTTL time.Duration
}

func openObjectBackend(ctx context.Context, cfg config.StorageConfig) (objectBackend, error) {
	switch cfg.Driver {
	case "s3":
		client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return objectBackend{}, err
		}
		signer := presigned.NewService(asset.NewS3Presigner(client), cfg.SignedURLTTL)
		return objectBackend{
			store:        asset.NewS3Store(client, signer),
			admin:        storage.NewS3Admin(client, cfg.Region),
			signedURLTTL: signer.TTL(),
		}, nil
	default:
		client, err := storage.NewMinIOClient(cfg)
		if err != nil {
			return objectBackend{}, err
		}
		signer := presigned.NewService(client, cfg.SignedURLTTL)
		return objectBackend{
			store:        asset.NewMinIOStore(client, signer),
			admin:        storage.NewMinIOAdmin(client, cfg.Region),
			signedURLTTL: signer.TTL(),
		}, nil
	}
}

// openKV returns the pointer store selected by cfg and a func releasing it.
// The postgres backend is migrated before use.
func openKV(ctx context.Context, cfg *config.Config, log *zap.Logger) (kv.Store, func(), error) {
	switch cfg.KV.Driver {
	case "sqlite":
		store, err := kv.OpenSQLite(cfg.KV.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite kv store", zap.String("path", cfg.KV.SQLitePath))
		return store, func() { _ = store.Close() }, nil
	case "memory":
		log.Warn("using in-memory kv store; the resume pointer is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil
	default:
		if err := storage.Migrate(ctx, cfg.Postgres.DSN()); err != nil {
			return nil, nil, err
		}
		pool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return kv.NewPostgresStore(pool), pool.Close, nil
	}
}

func newBucketService(cfg config.StorageConfig, admin bucket.Admin, log *zap.Logger) *bucket.Service {
	return bucket.NewService(admin, log.Named("bucket"),
		bucket.ResumePolicy(cfg.ResumeBucket()),
		bucket.ImagePolicy(cfg.ImageBucket()),
	)
}

// newAssetService admits uploads against the policies the bucket service provisions.
func newAssetService(buckets *bucket.Service, backend objectBackend, pointers kv.Store, log *zap.Logger) (*asset.Service, error) {
	resumes, err := buckets.Policy(bucket.KindResume)
	if err != nil {
		return nil, fmt.Errorf("resume bucket: %w", err)
	}
	images, err := buckets.Policy(bucket.KindImage)
	if err != nil {
		return nil, fmt.Errorf("image bucket: %w", err)
	}
	return asset.NewService(backend.store, pointers, resumes, images, backend.signedURLTTL, log.Named("asset")), nil
}
