// Package cli provides common CLI initialization utilities shared by the
// binaries under cmd/.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"bilancio/internal/backend"
	"bilancio/internal/config"
	applog "bilancio/internal/log"
	"bilancio/internal/services"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitLedger builds the configured store and loads the ledger from it.
// Returns the ledger and a cleanup function, or exits the process on failure.
func InitLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*services.Ledger, func() error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	backendLogger := logger.WithComponent(applog.ComponentBackend)
	result, err := backend.NewFactory(backendLogger.Logger).CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ledger, err := services.NewLedger(ctx, result.Store)
	if err != nil {
		logger.Error("Failed to load transaction log", "error", err)
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
		os.Exit(1)
	}

	cleanup := result.Cleanup
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return ledger, cleanup
}
