package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderJob is a one-shot deferred notification for a booking. FireAt is
// the appointment start minus the configured lead time, at UTC offset zero.
// The job carries everything needed to compose the message so delivery does
// not depend on the database.
type ReminderJob struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Email         string    `json:"email"`
	DoctorName    string    `json:"doctor_name"`
	Specialty     string    `json:"specialty"`
	StartTime     time.Time `json:"start_time"`
	FireAt        time.Time `json:"fire_at"`
}
