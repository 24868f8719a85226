// Package cli consolidates the initialization shared by cmd/rendiconto and
// cmd/rendiconto-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"rendiconto/internal/config"
	"rendiconto/internal/log"
	"rendiconto/internal/storage"
)

// Setup loads the optional .env file and initializes logging for the
// given process name.
func Setup(component string) *slog.Logger {
	_ = godotenv.Load()
	return log.Setup(component, log.LevelFromEnv())
}

// LoadAndValidateConfig loads configuration and exits on validation errors.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitJournal opens the run journal or exits.
func InitJournal(logger *slog.Logger, dbPath string) *storage.SQLiteRepository {
	journal, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to open run journal", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return journal
}
