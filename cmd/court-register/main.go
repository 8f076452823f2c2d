package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"court-register-go/internal/app"
	"court-register-go/internal/config"
	"court-register-go/pkg/logger"
	flag "github.com/spf13/pflag"
)

func main() {
	envFile := flag.String("env-file", "", "path to a .env file (default: nearest .env above the working directory)")
	migrate := flag.Bool("migrate", false, "apply pending SQL migrations before serving")
	migrateOnly := flag.Bool("migrate-only", false, "apply pending SQL migrations and exit")
	flag.Parse()

	bootstrap := logger.NewWithOptions(os.Stdout, logger.Options{Service: "court-register"})
	bootstrap.Info("app: loading config")
	cfg, err := config.Load(*envFile, bootstrap)
	if err != nil {
		bootstrap.Critical("app: config failed", "err", err)
		os.Exit(1)
	}
	log := logger.NewWithOptions(os.Stdout, cfg.LoggerOptions())

	if *migrateOnly {
		if err := app.RunMigrations(cfg, log); err != nil {
			log.Critical("db: migrations failed", "err", err)
			os.Exit(1)
		}
		return
	}

	log.Info("app: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, app.Options{Migrate: *migrate}, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		os.Exit(1)
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("app: stopped")
		return
	}

	os.Exit(exitCode)
}
