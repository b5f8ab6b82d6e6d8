package main

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/unidash/unidash/internal/bootstrap"
	"github.com/unidash/unidash/internal/modules/service"
)

func getSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Creates the General view and its built-in universities",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	inj := bootstrap.BuildContainer(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = bootstrap.Close(ctx, inj)
	}()

	seed, err := do.Invoke[service.SeedService](inj)
	if err != nil {
		return err
	}
	res, err := seed.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "view %d: %d universities, %d columns, %d values added\n",
		res.ViewID, res.UniversitiesCreated, res.ColumnsCreated, res.ValuesWritten)
	return nil
}
