// Command seedcatalog loads a YAML catalog fixture and can promote an account
// to admin.
//
//	go run ./cmd/tools/seedcatalog -file testdata/catalog.yaml -admin ops@example.com
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/internal/modules/accounts"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/shared/dbx"
)

func main() {
	_ = godotenv.Load()
	file := flag.String("file", "", "YAML catalog fixture")
	admin := flag.String("admin", "", "email of an existing account to promote to admin")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(*file, *admin, logger); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run(file, admin string, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := dbx.OpenMySQL(cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		inputs, err := catalog.ParseSeed(f)
		if err != nil {
			return err
		}
		// images are uploaded through the admin API, so no storage here
		svc := catalog.NewService(catalog.NewRepo(db), nil, cfg.Theme, logger)
		for _, in := range inputs {
			p, err := svc.CreateProduct(ctx, in)
			if err != nil {
				return err
			}
			logger.Info("product created", "handle", p.Handle, "variants", len(p.Variants))
		}
	}

	if admin != "" {
		acc := accounts.NewService(accounts.NewRepo(db), cfg.SessionTTL, logger)
		if err := acc.PromoteAdmin(ctx, admin); err != nil {
			return err
		}
		logger.Info("admin promoted", "email", admin)
	}
	return nil
}
