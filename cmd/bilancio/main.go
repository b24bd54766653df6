package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bilancio/internal/cli"
	apphttp "bilancio/internal/http"
	"bilancio/internal/taxonomy"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger, cleanup := cli.InitLedger(ctx, logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Cleanup error", "error", err)
		}
	}()

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		logger.Error("Failed to load taxonomy", "error", err, "path", cfg.TaxonomyPath)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, ledger, tax, apphttp.Options{
		AlertHorizonDays: cfg.AlertHorizonDays,
		AlertMaxCount:    cfg.AlertMaxCount,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting bilancio server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
