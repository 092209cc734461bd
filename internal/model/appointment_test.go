package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSortSlots_TimeThenClinicThenDoctor(t *testing.T) {
	clinicA := &Clinic{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "A"}
	clinicB := &Clinic{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "B"}
	doctorA := &Doctor{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333")}
	doctorB := &Doctor{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444")}

	nine := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	half := nine.Add(30 * time.Minute)

	slots := []Slot{
		{Clinic: clinicB, Doctor: doctorA, StartTime: nine},
		{Clinic: clinicA, Doctor: doctorB, StartTime: half},
		{Clinic: clinicA, Doctor: doctorB, StartTime: nine},
		{Clinic: clinicA, Doctor: doctorA, StartTime: nine},
	}
	SortSlots(slots)

	assert.Equal(t, []Slot{
		{Clinic: clinicA, Doctor: doctorA, StartTime: nine},
		{Clinic: clinicA, Doctor: doctorB, StartTime: nine},
		{Clinic: clinicB, Doctor: doctorA, StartTime: nine},
		{Clinic: clinicA, Doctor: doctorB, StartTime: half},
	}, slots)
}

func TestSlotLess_EqualSlotsNotLess(t *testing.T) {
	clinic := &Clinic{ID: uuid.New()}
	doctor := &Doctor{ID: uuid.New()}
	at := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	a := Slot{Clinic: clinic, Doctor: doctor, StartTime: at}
	assert.False(t, a.Less(a))
}
