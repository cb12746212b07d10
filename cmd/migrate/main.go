// Command migrate creates or updates the identities and tasks tables for the configured database.
package main

import (
	"context"
	"log/slog"
	"os"

	"tasklist/config"
	logs "tasklist/internal/infra/log"
	"tasklist/internal/infra/persistence/database"
	"tasklist/internal/infra/persistence/model"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := logs.NewWithWriter(cfg, os.Stdout)
	if err != nil {
		slog.Error("Failed to create logger", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Migration finished",
		slog.String("driver", cfg.Database.Driver),
		slog.Int("models", len(model.All())),
	)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
