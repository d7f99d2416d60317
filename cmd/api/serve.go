package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarvaliya/folio/internal/auth"
	"github.com/sarvaliya/folio/internal/config"
	"github.com/sarvaliya/folio/internal/content"
	"github.com/sarvaliya/folio/internal/metrics"
	"github.com/sarvaliya/folio/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg, log)
		},
	}
}

func runServer(parent context.Context, cfg *config.Config, log *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	metrics.InitMetrics()

	pointers, closeKV, err := openKV(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	backend, err := openObjectBackend(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	bucketService := newBucketService(cfg.Storage, backend.admin, log)
	if err := bucketService.Provision(ctx); err != nil {
		log.Warn("bucket provisioning failed", zap.Error(err))
	}

	doc, err := content.Load(cfg.Content.Path)
	switch {
	case errors.Is(err, content.ErrNotConfigured):
		log.Info("portfolio content not configured", zap.String("path", cfg.Content.Path))
	case err != nil:
		return err
	}

	assetService, err := newAssetService(bucketService, backend, pointers, log)
	if err != nil {
		return err
	}

	handler := server.NewHandler(server.Dependencies{
		Config:        *cfg,
		Logger:        log,
		KV:            pointers,
		AuthService:   auth.NewService(cfg.Auth),
		BucketService: bucketService,
		AssetService:  assetService,
		Content:       doc,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("folio API listening",
			zap.String("addr", cfg.Server.Address()),
			zap.String("prefix", cfg.Server.RoutePrefix),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("kv", cfg.KV.Driver),
			zap.Duration("signed_url_ttl", backend.signedURLTTL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	return nil
}
