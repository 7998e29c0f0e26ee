// Package main runs the interactive inventory register.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/platform/logger"
	"github.com/abgdnv/inventory/internal/product/handler"
	"github.com/abgdnv/inventory/internal/product/service"
	"github.com/abgdnv/inventory/internal/product/store"
)

// exitInterrupted is the conventional status for a process stopped by SIGINT.
const exitInterrupted = 130

func main() {
	// Load configuration
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		log.Fatalf("Error loading configuration: %v", cfgErr)
	}

	// Set up structured logging, away from stdout which carries the menu
	logOut, closeLog := openLogOutput(cfg.Log.File)
	defer closeLog()
	logLevel, appLogger := logger.New(logOut, cfg.Log.Level, cfg.Log.Format)
	appLogger.Debug("Configuration loaded", "config", cfg.String(), "actual_slog_level", logLevel.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	register, err := service.NewRegister(ctx, newStore(cfg, appLogger), appLogger)
	if err != nil {
		appLogger.Error("Unable to load products", "error", err)
		closeLog()
		os.Exit(1)
	}

	menu := handler.NewMenu(register, os.Stdin, os.Stdout, appLogger)
	if err := menu.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			appLogger.Info("Interrupted", "products", register.Count())
			os.Stdout.WriteString("\nInterrompido.\n")
			stop()
			closeLog()
			os.Exit(exitInterrupted)
		}
		appLogger.Error("Menu failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// newStore picks the product store for the configured backend.
func newStore(cfg *config.Config, logger *slog.Logger) store.ProductStore {
	if cfg.Data.Backend == config.BackendMemory {
		logger.Info("Using in-memory store, nothing will be persisted")
		return store.NewInMemoryStore()
	}
	return store.NewFileStore(cfg.Data.File, logger)
}

// openLogOutput opens the configured log file for appending, or falls back to stderr.
func openLogOutput(path string) (io.Writer, func()) {
	if path == "" {
		return os.Stderr, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Unable to open log file %s, logging to stderr: %v", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { _ = f.Close() }
}
