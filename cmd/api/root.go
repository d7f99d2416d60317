package main

import (
	"github.com/sarvaliya/folio/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	serve := newServeCmd(cfg, log)

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "Folio serves portfolio assets: resume and image uploads with signed URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(
		serve,
		newMigrateCmd(cfg, log),
		newProvisionCmd(cfg, log),
	)

	return cmd
}
