package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"carteira/internal/amqp"
	"carteira/internal/config"
	applog "carteira/internal/log"
	"carteira/internal/remote"
	"carteira/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting carteira-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if len(cfg.SellerIDs) == 0 {
		logger.Error("No sellers configured, set SELLER_IDS")
		os.Exit(1)
	}

	var alerts worker.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		alerts = amqpClient
	} else {
		logger.Info("AMQP disabled - refresh results will only be logged")
	}

	fetcher := remote.NewClient(cfg.RemoteAPIURL, cfg.RemoteTimeout)
	refreshWorker := worker.NewRefreshWorker(fetcher, alerts, cfg.SellerIDs, cfg.RefreshConcurrency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run once on startup so a fresh deployment has data immediately.
	if err := refreshWorker.RunOnce(ctx); err != nil {
		logger.Error("Startup refresh failed", "error", err)
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.RefreshSchedule, func() {
		if err := refreshWorker.RunOnce(ctx); err != nil {
			logger.Error("Scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("Invalid refresh schedule", "schedule", cfg.RefreshSchedule, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("Refresh schedule active",
		"schedule", cfg.RefreshSchedule,
		"sellers", len(cfg.SellerIDs),
		"concurrency", cfg.RefreshConcurrency)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	cancel()
	<-scheduler.Stop().Done()
	logger.Info("Worker stopped gracefully")
}
