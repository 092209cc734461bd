package model

import (
	"fmt"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Specialty string    `db:"specialty" json:"specialty"`
}

func (d *Doctor) FullName() string {
	return fmt.Sprintf("%s %s", d.FirstName, d.LastName)
}
