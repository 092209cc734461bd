package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a patient's review of a completed appointment, one per booking.
type Rating struct {
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	Score         int       `db:"score" json:"score"`
	Comment       string    `db:"comment" json:"comment,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
