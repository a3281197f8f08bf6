package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"condoledger/internal/amqp"
	"condoledger/internal/config"
	"condoledger/internal/log"
	"condoledger/internal/sheets"
	gsheet "condoledger/internal/sheets/google"
	"condoledger/internal/sheets/memory"
	"condoledger/internal/storage"
	"condoledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting condoledger-worker")

	cfg := config.Load()
	if err := cfg.ValidateWorker(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var writer sheets.WorkbookWriter
	switch cfg.MirrorBackend {
	case "google":
		client, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Mirroring to Google Sheets", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		writer = memory.New()
		logger.Info("Mirroring to in-memory store")
	}

	mirror := worker.NewMirror(cfg.CondoName, repo, writer)

	// Push once on startup so a spreadsheet created after changes were made
	// catches up without waiting for the next mutation.
	if err := mirror.Push(ctx, cfg.CondoKey); err != nil {
		logger.Error("Startup mirror push failed", log.FieldError, err, log.FieldCondo, cfg.CondoKey)
		// Keep running; the next change notification retries.
	}

	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- amqp.ConsumeForever(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, mirror.Handle)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
		<-consumeErr
	case err := <-consumeErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", log.FieldError, err)
			os.Exit(1)
		}
	}

	logger.Info("Worker stopped gracefully")
}
