package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/internal/repository"
	apperrors "github.com/edoc/booking-api/pkg/errors"
)

// ReminderScheduler arranges the deferred notification for a committed
// booking. Implementations must never fail the booking: scheduling errors
// stay on their side of this interface.
type ReminderScheduler interface {
	Schedule(ctx context.Context, job model.ReminderJob)
}

type Service struct {
	appointments repository.AppointmentRepository
	clinics      repository.ClinicRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	reminders    ReminderScheduler
}

func NewService(
	appointments repository.AppointmentRepository,
	clinics repository.ClinicRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	reminders ReminderScheduler,
) *Service {
	return &Service{
		appointments: appointments,
		clinics:      clinics,
		doctors:      doctors,
		patients:     patients,
		reminders:    reminders,
	}
}

// Book commits an appointment for the patient. The slot's existence check
// and insert are one atomic store operation; losing a race for the key
// returns a Conflict. A reminder is scheduled only when the patient has an
// e-mail address, and a scheduling problem never unwinds the booking.
func (s *Service) Book(ctx context.Context, clinicID, doctorID uuid.UUID, startTime time.Time, pesel string) (*model.Appointment, error) {
	doctor, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		return nil, s.upstream("load doctor", err)
	}

	clinic, err := s.clinics.Get(ctx, clinicID)
	if err != nil {
		return nil, s.upstream("load clinic", err)
	}

	patient, err := s.patients.Get(ctx, pesel)
	if err != nil {
		return nil, s.upstream("load patient", err)
	}

	appointment := &model.Appointment{
		ClinicID:     clinic.ID,
		DoctorID:     doctor.ID,
		PatientPESEL: patient.PESEL,
		StartTime:    startTime.UTC(),
	}

	if err := s.appointments.Insert(ctx, appointment); err != nil {
		return nil, s.upstream("create appointment", err)
	}

	if patient.Email != "" {
		s.reminders.Schedule(ctx, model.ReminderJob{
			AppointmentID: appointment.ID,
			Email:         patient.Email,
			DoctorName:    doctor.FullName(),
			Specialty:     doctor.Specialty,
			StartTime:     appointment.StartTime,
		})
	}

	return appointment, nil
}

// BookedTimes lists the start times already taken for a doctor at a clinic
// on the given date, so a client can gray out occupied slots without running
// a full availability search.
func (s *Service) BookedTimes(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) ([]time.Time, error) {
	times, err := s.appointments.ListTimesForDay(ctx, clinicID, doctorID, day)
	if err != nil {
		return nil, apperrors.Unavailable("booking store unavailable", err)
	}
	return times, nil
}

func (s *Service) ListForPatient(ctx context.Context, pesel string) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListByPatient(ctx, pesel)
	if err != nil {
		return nil, apperrors.Unavailable("booking store unavailable", err)
	}
	return appointments, nil
}

// upstream passes through actionable application errors (NotFound,
// Conflict) and classifies everything else as an unreachable collaborator.
func (s *Service) upstream(op string, err error) error {
	if apperrors.IsCode(err, apperrors.ErrNotFound) || apperrors.IsCode(err, apperrors.ErrConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return apperrors.Unavailable(op+" failed", err)
}
