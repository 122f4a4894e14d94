package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/aurora-watch/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/aurora-watch/internal/adapter/kafka"
	"github.com/couchcryptid/aurora-watch/internal/adapter/noaa"
	"github.com/couchcryptid/aurora-watch/internal/config"
	"github.com/couchcryptid/aurora-watch/internal/notify"
	"github.com/couchcryptid/aurora-watch/internal/observability"
	"github.com/couchcryptid/aurora-watch/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	fetcher := noaa.NewClient(cfg.ForecastURL, cfg.FetchTimeout, logger)

	// Notification transport: Kafka when a topic is configured, the
	// structured log otherwise.
	var sender notify.Sender
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		sender = kafkaWriter
		logger.Info("kafka notification transport enabled", "topic", cfg.KafkaNotifyTopic)
	} else {
		sender = notify.NewLogSender(logger)
		logger.Info("log notification transport enabled")
	}

	notifier := notify.New(sender, cfg.NotifySender, cfg.NotifyRecipient, clock, logger, metrics)
	sched := scheduler.New(fetcher, notifier, cfg, clock, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, sched, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the daily check loop.
	go func() {
		if err := sched.Run(ctx); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
