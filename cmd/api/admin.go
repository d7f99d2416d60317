package main

import (
	"context"
	"fmt"

	"github.com/sarvaliya/folio/internal/config"
	"github.com/sarvaliya/folio/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the kv_store schema to PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.KV.Driver != "postgres" {
				return fmt.Errorf("migrate requires KV_DRIVER=postgres, got %q", cfg.KV.Driver)
			}
			if err := storage.Migrate(commandContext(cmd), cfg.Postgres.DSN()); err != nil {
				return err
			}
			log.Info("migrations applied", zap.String("database", cfg.Postgres.Database))
			return nil
		},
	}
}

func newProvisionCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the resume and image buckets if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			backend, err := openObjectBackend(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			service := newBucketService(cfg.Storage, backend.admin, log)
			if err := service.Provision(ctx); err != nil {
				return err
			}
			for _, p := range service.Policies() {
				log.Info("bucket ready", zap.String("bucket", p.Name), zap.String("kind", string(p.Kind)))
			}
			return nil
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
