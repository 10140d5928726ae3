// Command tally-sweep runs a single recurrence sweep against the configured
// store and exits. Useful from cron or for inspecting what a fresh start of
// the server would materialize.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tally/internal/app"
	"tally/internal/config"
	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/notify"
	"tally/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(log.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

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

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP notifier, falling back to log", "error", err)
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
		}
	}

	ctx := context.Background()

	application, err := app.Load(ctx, st, notifier)
	if err != nil {
		logger.Error("Failed to load application state", "error", err)
		os.Exit(1)
	}

	created, err := application.RunStartupSweep(ctx, core.DateOf(time.Now()))
	if err != nil {
		logger.Error("Sweep failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("sweep complete: %d occurrence(s) created\n", created)
}
