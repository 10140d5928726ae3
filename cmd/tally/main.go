package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tally/internal/app"
	"tally/internal/config"
	"tally/internal/core"
	tallyhttp "tally/internal/http"
	"tally/internal/log"
	"tally/internal/notify"
	"tally/internal/store"
)

func main() {
	// Load .env for local development; ignore errors in production.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(log.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	logger.Info("Starting tally")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.StoreConfig(), logger)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Due-today alerts go to AMQP when a broker is configured, otherwise to
	// the log.
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP notifier, falling back to log", "error", err)
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
			logger.Info("AMQP notifier initialized",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Load(ctx, st, notifier)
	if err != nil {
		logger.Error("Failed to load application state", "error", err)
		os.Exit(1)
	}

	// One recurrence sweep per process start; downstream consumers then see
	// an up-to-date ledger.
	created, err := application.RunStartupSweep(ctx, core.DateOf(time.Now()))
	if err != nil {
		logger.Error("Startup sweep failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Startup sweep complete", "occurrences_created", created)

	server := tallyhttp.NewServer(cfg.Port, application)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", cfg.Port)
		return server.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
