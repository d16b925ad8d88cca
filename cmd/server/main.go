package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/rollfinder/internal/config"
	"github.com/JonMunkholm/rollfinder/internal/core"
	"github.com/JonMunkholm/rollfinder/internal/logging"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
	"github.com/JonMunkholm/rollfinder/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "config", cfg.String())

	fetcher := sheet.NewFetcher(&http.Client{}, cfg.Source.MaxBytes, cfg.Source.UserAgent)
	service := core.NewService(cfg, fetcher)
	server := web.NewServer(service, cfg)

	// Cancelled on shutdown so an in-flight download does not hold the process.
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// The page is served while the sheet loads; its banner shows progress.
	go func() {
		if err := service.Load(jobCtx); err != nil {
			slog.Warn("student data unavailable", "error", err, "code", core.MapError(err).Code)
		}
	}()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
