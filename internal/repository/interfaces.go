package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// ClinicRepository is the clinic directory. List order is the
	// directory order the availability search iterates in.
	ClinicRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		List(ctx context.Context, city, nameFilter string) ([]*model.Clinic, error)
	}

	// DoctorRepository is the doctor directory, filtered per clinic.
	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context, clinicName, specialty, nameFilter string) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Get(ctx context.Context, pesel string) (*model.Patient, error)
	}

	// AppointmentRepository is the booking store. Insert performs the
	// atomic check-and-insert: a duplicate (clinic, doctor, start time)
	// key surfaces as a Conflict error, never as a silent overwrite.
	AppointmentRepository interface {
		Insert(ctx context.Context, appointment *model.Appointment) error
		Exists(ctx context.Context, clinicID, doctorID uuid.UUID, at time.Time) (bool, error)
		ListByPatient(ctx context.Context, pesel string) ([]*model.Appointment, error)
		ListTimesForDay(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) ([]time.Time, error)
	}

	// ScheduleRepository is the schedule provider. A nil window with a nil
	// error means no clinic hours for that doctor on that date.
	ScheduleRepository interface {
		GetWorkingWindow(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) (*model.WorkingWindow, error)
	}

	RatingRepository interface {
		Get(ctx context.Context, appointmentID uuid.UUID) (*model.Rating, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error)
	}
)
