package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/edoc/booking-api/internal/email"
	"github.com/edoc/booking-api/internal/service/reminder"
	"github.com/edoc/booking-api/internal/worker"
	"github.com/edoc/booking-api/pkg/logger"
	"github.com/edoc/booking-api/pkg/queue"
	"github.com/edoc/booking-api/pkg/scheduler"
)

type workerConfig struct {
	RedisURL     string        `envconfig:"REDIS_URL" required:"true"`
	SMTPHost     string        `envconfig:"SMTP_HOST" required:"true"`
	SMTPPort     int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string        `envconfig:"SMTP_USERNAME"`
	SMTPPassword string        `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string        `envconfig:"SMTP_FROM" required:"true"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`
	BatchSize    int64         `envconfig:"BATCH_SIZE" default:"100"`
	LeadHours    int           `envconfig:"REMINDER_LEAD_HOURS" default:"24"`
	MetricsPort  int           `envconfig:"METRICS_PORT" default:"9090"`
}

func main() {
	logger.Init(logger.InfoLevel)

	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	q, err := queue.NewRedisQueue(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer q.Close()

	emailSvc := email.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	reminders := reminder.NewService(
		emailSvc,
		scheduler.New(),
		nil,
		time.Duration(cfg.LeadHours)*time.Hour,
		log.Logger,
	)

	dispatcher := worker.NewReminderDispatcher(q, reminders, cfg.PollInterval, cfg.BatchSize)

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		log.Info().Int("port", cfg.MetricsPort).Msg("serving worker metrics")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down worker...")
		cancel()
	}()

	dispatcher.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop metrics server")
	}

	log.Info().Msg("worker exited properly")
}
