package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lumenstore.com/app/internal/config"
	apphttp "lumenstore.com/app/internal/http"
	"lumenstore.com/app/internal/mailer"
	"lumenstore.com/app/internal/modules/accounts"
	"lumenstore.com/app/internal/shared/dbx"
	"lumenstore.com/app/internal/storage"
)

func main() {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	if err := run(logger); err != nil {
		logger.Error("server_exit", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbx.OpenMySQL(cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	store, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	var m mailer.Mailer = mailer.Log{Logger: logger}
	switch {
	case cfg.Mailtrap.Enabled():
		m = mailer.NewMailtrap(cfg.Mailtrap)
	case cfg.SMTP.Enabled():
		m = mailer.NewSMTP(cfg.SMTP)
	}
	m = mailer.WithSender(m, cfg.SMTP.From, cfg.SMTP.FromName)

	deps := apphttp.Deps{Config: cfg, DB: db, Storage: store, Mailer: m, Logger: logger}
	svc := apphttp.NewServices(deps)
	r, err := apphttp.NewRouter(deps, svc)
	if err != nil {
		return err
	}

	go purgeSessions(ctx, svc.Accounts, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_start", slog.String("addr", cfg.Addr), slog.String("storage", cfg.Storage.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Info("server_stop")
	return srv.Shutdown(shutdownCtx)
}

// purgeSessions drops expired sessions hourly until ctx ends.
func purgeSessions(ctx context.Context, acc *accounts.Service, logger *slog.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := acc.PurgeExpiredSessions(ctx)
			if err != nil {
				logger.Warn("session_purge_failed", slog.Any("err", err))
				continue
			}
			if n > 0 {
				logger.Info("sessions_purged", slog.Int64("count", n))
			}
		}
	}
}
