package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VisitDuration is the fixed length of every appointment slot.
const VisitDuration = 30 * time.Minute

// Appointment is a committed booking. Uniqueness is enforced on
// (clinic_id, doctor_id, start_time); rows are created once and never
// updated in place.
type Appointment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ClinicID     uuid.UUID `db:"clinic_id" json:"clinic_id"`
	DoctorID     uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientPESEL string    `db:"patient_pesel" json:"patient_pesel"`
	StartTime    time.Time `db:"start_time" json:"start_time"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Slot is a free appointment candidate. Slots are computed per search and
// never persisted; booking one turns it into an Appointment.
type Slot struct {
	Clinic    *Clinic   `json:"clinic"`
	Doctor    *Doctor   `json:"doctor"`
	StartTime time.Time `json:"start_time"`
}

// Less orders slots by start time, then clinic id, then doctor id. The id
// tie-breaks keep results reproducible when slots from different doctors
// coincide.
func (s Slot) Less(other Slot) bool {
	if !s.StartTime.Equal(other.StartTime) {
		return s.StartTime.Before(other.StartTime)
	}
	if c := strings.Compare(s.Clinic.ID.String(), other.Clinic.ID.String()); c != 0 {
		return c < 0
	}
	return strings.Compare(s.Doctor.ID.String(), other.Doctor.ID.String()) < 0
}

// SortSlots sorts in place by the total slot ordering.
func SortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Less(slots[j])
	})
}

type CreateAppointmentRequest struct {
	ClinicID  string    `json:"clinic_id" binding:"required,uuid"`
	DoctorID  string    `json:"doctor_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	PESEL     string    `json:"pesel" binding:"required"`
}
