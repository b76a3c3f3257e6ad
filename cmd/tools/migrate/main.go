// Command migrate creates or updates every storefront table.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"lumenstore.com/app/internal/schema"
	"lumenstore.com/app/internal/shared/dbx"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logger.Error("DB_DSN environment variable is required")
		os.Exit(1)
	}
	db, err := dbx.OpenMySQL(dsn, logger)
	if err != nil {
		logger.Error("connect", "err", err)
		os.Exit(1)
	}

	models := schema.Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}
	logger.Info("schema up to date", "tables", len(models))
}
