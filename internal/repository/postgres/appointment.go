package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/edoc/booking-api/internal/model"
	apperrors "github.com/edoc/booking-api/pkg/errors"
)

// uniqueViolation is the Postgres error code raised by the
// UNIQUE(clinic_id, doctor_id, start_time) constraint on appointments.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Insert commits a booking. The existence check and the insert are a single
// atomic unit: the unique key constraint decides races, and the loser gets
// a Conflict error.
func (r *appointmentRepository) Insert(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, clinic_id, doctor_id, patient_pesel, start_time, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.ClinicID,
		appointment.DoctorID,
		appointment.PatientPESEL,
		appointment.StartTime,
		appointment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slot already booked", err)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Exists(ctx context.Context, clinicID, doctorID uuid.UUID, at time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE clinic_id = $1
			AND doctor_id = $2
			AND start_time = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, clinicID, doctorID, at)
	if err != nil {
		return false, fmt.Errorf("failed to check appointment existence: %w", err)
	}
	return exists, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, pesel string) ([]*model.Appointment, error) {
	query := `
		SELECT id, clinic_id, doctor_id, patient_pesel, start_time, created_at
		FROM appointments
		WHERE patient_pesel = $1
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, pesel)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListTimesForDay(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) ([]time.Time, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT start_time
		FROM appointments
		WHERE clinic_id = $1
		AND doctor_id = $2
		AND start_time >= $3
		AND start_time < $4
		ORDER BY start_time ASC
	`
	var times []time.Time
	err := r.db.SelectContext(ctx, &times, query, clinicID, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment times: %w", err)
	}
	return times, nil
}
