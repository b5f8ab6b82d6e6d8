package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unidash/unidash/internal/infra/db"
	"github.com/unidash/unidash/internal/infra/logger"
)

func getMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Creates or upgrades the database schema",
		Long: `Creates every table, unique key and cascade the dashboard needs and adds
cell format columns missing from older databases. Safe to run repeatedly.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	log, err := logger.New(cfg.Log.Level, cfg.App.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	d, err := db.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := d.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := db.EnsureSchema(ctx, d, log); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("schema up to date", zap.String("driver", cfg.Database.Driver))
	return nil
}
