package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"condoledger/internal/amqp"
	"condoledger/internal/config"
	"condoledger/internal/extract"
	apphttp "condoledger/internal/http"
	"condoledger/internal/log"
	"condoledger/internal/services"
	"condoledger/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting condoledger")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.WithComponent(log.ComponentStorage).Error("Failed to initialize SQLite repository",
			log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Change notifications are best effort: without a broker the API still
	// serves, the spreadsheet mirror just stays stale.
	var publisher services.Publisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.WithComponent(log.ComponentAMQP).Warn("AMQP unavailable, change notifications disabled",
			log.FieldError, err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	ledger := services.NewLedgerService(cfg.CondoKey, repo, publisher)

	var extractor services.Extractor
	if cfg.ExtractorURL != "" {
		extractor = extract.NewClient(cfg.ExtractorURL, cfg.ExtractorTimeout)
		logger.WithComponent(log.ComponentExtract).Info("Extraction service configured",
			"url", cfg.ExtractorURL)
	} else {
		logger.WithComponent(log.ComponentExtract).Info("No EXTRACTOR_URL set, document import disabled")
	}
	importer := services.NewImportService(cfg.CondoKey, repo, extractor, publisher)

	srv := apphttp.NewServer(":"+cfg.Port, cfg.CondoName, ledger, importer)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting condoledger server",
		"port", cfg.Port, log.FieldCondo, cfg.CondoKey)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
