package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edoc/booking-api/internal/email"
	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/pkg/queue"
	"github.com/edoc/booking-api/pkg/scheduler"
)

const DefaultLeadTime = 24 * time.Hour

// Service schedules and delivers appointment reminders. When a durable
// queue is configured the job is parked there for a worker to deliver;
// otherwise an in-process timer fires it and pending reminders do not
// survive a restart.
type Service struct {
	emailSvc email.Service
	sched    scheduler.Scheduler
	queue    queue.Queue
	lead     time.Duration
	logger   zerolog.Logger
}

func NewService(emailSvc email.Service, sched scheduler.Scheduler, q queue.Queue, lead time.Duration, logger zerolog.Logger) *Service {
	if lead <= 0 {
		lead = DefaultLeadTime
	}
	return &Service{
		emailSvc: emailSvc,
		sched:    sched,
		queue:    q,
		lead:     lead,
		logger:   logger,
	}
}

// Schedule arranges one reminder at the appointment start minus the lead
// time, interpreted at UTC offset zero. A fire-time already in the past
// fires as soon as possible. Failures are logged and absorbed; the booking
// that triggered the reminder is never affected.
func (s *Service) Schedule(ctx context.Context, job model.ReminderJob) {
	job.FireAt = job.StartTime.Add(-s.lead).UTC()

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.logger.Error().
				Err(err).
				Str("appointment_id", job.AppointmentID.String()).
				Time("fire_at", job.FireAt).
				Msg("failed to enqueue appointment reminder")
		}
		return
	}

	s.sched.ScheduleOnce(job.FireAt, func() {
		// Request context is long gone when the timer fires.
		_ = s.Deliver(context.Background(), job)
	})
}

// Deliver composes and sends the reminder e-mail. The error is logged here
// and returned only so the dispatcher can count failures.
func (s *Service) Deliver(ctx context.Context, job model.ReminderJob) error {
	subject := fmt.Sprintf("Appointment reminder - %s - %s", job.DoctorName, job.Specialty)
	body := email.AppointmentReminderBody(job.DoctorName, job.Specialty, job.StartTime)

	if err := s.emailSvc.Send(ctx, job.Email, subject, body); err != nil {
		s.logger.Error().
			Err(err).
			Str("appointment_id", job.AppointmentID.String()).
			Str("recipient", job.Email).
			Msg("failed to send appointment reminder")
		return err
	}

	s.logger.Info().
		Str("appointment_id", job.AppointmentID.String()).
		Str("recipient", job.Email).
		Msg("appointment reminder sent")
	return nil
}
