package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unidash/unidash/internal/config"
	"github.com/unidash/unidash/internal/telemetry"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unidash",
		Short: "unidash serves the university application dashboard",
		Long: `unidash stores universities, configurable per-view columns and their cell
values, and serves them over an HTTP API.

Commands:
  - serve: Run the HTTP API
  - migrate: Create or upgrade the database schema
  - seed: Create the General view with its built-in universities

Configuration precedence (highest to lowest):
  1. Environment variables (UNIDASH_*)
  2. Config file (unidash.yaml)
  3. Built-in defaults

Nested keys use underscores (database.dsn -> UNIDASH_DATABASE_DSN).`,
		Version:      telemetry.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./unidash.yaml or ./configs/unidash.yaml)")

	rootCmd.AddCommand(getServeCmd())
	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getSeedCmd())

	return rootCmd
}

// getConfig returns the configuration loaded by the root command.
func getConfig() *config.Config {
	return cfg
}
