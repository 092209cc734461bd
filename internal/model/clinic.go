package model

import (
	"github.com/google/uuid"
)

// Clinic is reference data owned by an external administrative process.
type Clinic struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	City string    `db:"city" json:"city"`
}
