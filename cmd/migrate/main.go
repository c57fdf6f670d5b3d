package main

import (
	"log/slog"
	"os"

	"github.com/dealdish/backend/config"
	"github.com/dealdish/backend/internal/database"
	"github.com/dealdish/backend/pkg/logging"
)

// Applies the schema migrations and exits. The API server also migrates on
// boot; this command exists for running migrations ahead of a deploy.
func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied")
}
