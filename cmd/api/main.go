package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edoc/booking-api/internal/config"
	"github.com/edoc/booking-api/internal/email"
	"github.com/edoc/booking-api/internal/handler"
	appointmentHandler "github.com/edoc/booking-api/internal/handler/appointment"
	availabilityHandler "github.com/edoc/booking-api/internal/handler/availability"
	ratingHandler "github.com/edoc/booking-api/internal/handler/rating"
	"github.com/edoc/booking-api/internal/repository/postgres"
	"github.com/edoc/booking-api/internal/router"
	availabilityService "github.com/edoc/booking-api/internal/service/availability"
	bookingService "github.com/edoc/booking-api/internal/service/booking"
	ratingService "github.com/edoc/booking-api/internal/service/rating"
	reminderService "github.com/edoc/booking-api/internal/service/reminder"
	"github.com/edoc/booking-api/internal/worker"
	"github.com/edoc/booking-api/pkg/logger"
	"github.com/edoc/booking-api/pkg/queue"
	"github.com/edoc/booking-api/pkg/scheduler"
)

func main() {
	logger.Init(logger.InfoLevel)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	clinicRepo := postgres.NewClinicRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	// Reminder delivery: a redis-backed queue when configured, otherwise
	// in-process timers (pending reminders then die with the process).
	var reminderQueue queue.Queue
	if cfg.Redis.URL != "" {
		rq, err := queue.NewRedisQueue(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rq.Close()
		reminderQueue = rq
	} else {
		log.Warn().Msg("no redis configured, pending reminders will not survive restarts")
	}

	emailSvc := email.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	reminderSvc := reminderService.NewService(
		emailSvc,
		scheduler.New(),
		reminderQueue,
		time.Duration(cfg.Booking.ReminderLeadHours)*time.Hour,
		log.Logger,
	)

	availabilitySvc := availabilityService.NewService(clinicRepo, doctorRepo, scheduleRepo, appointmentRepo, availabilityService.Config{
		MaxFreeSlots: cfg.Booking.MaxFreeSlots,
		MaxScanDays:  cfg.Booking.MaxScanDays,
		DirectoryTTL: cfg.Booking.DirectoryCacheTTL,
	})
	bookingSvc := bookingService.NewService(appointmentRepo, clinicRepo, doctorRepo, patientRepo, reminderSvc)
	ratingSvc := ratingService.NewService(ratingRepo)

	r := router.NewRouter(
		handler.NewHandler(),
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(bookingSvc),
		ratingHandler.NewHandler(ratingSvc),
		router.Config{},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	if reminderQueue != nil {
		dispatcher := worker.NewReminderDispatcher(reminderQueue, reminderSvc, 0, 0)
		go dispatcher.Start(dispatcherCtx)
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
