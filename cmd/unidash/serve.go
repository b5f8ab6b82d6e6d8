package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unidash/unidash/internal/bootstrap"
	"github.com/unidash/unidash/internal/modules/service"
	"github.com/unidash/unidash/internal/telemetry"
)

func getServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := getConfig()
	if _, err := telemetry.SetupTracing(cfg); err != nil {
		return err
	}

	inj := bootstrap.BuildContainer(cfg)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = bootstrap.Close(shutdownCtx, inj)
	}()

	log, err := do.Invoke[*zap.Logger](inj)
	if err != nil {
		return err
	}
	seed, err := do.Invoke[service.SeedService](inj)
	if err != nil {
		return err
	}
	if err := bootstrap.EnsureGeneralView(ctx, seed, cfg, log); err != nil {
		return err
	}

	engine, err := bootstrap.NewServer(inj)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("ai_mode", cfg.AI.Mode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
