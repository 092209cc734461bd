package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edoc/booking-api/internal/model"
	apperrors "github.com/edoc/booking-api/pkg/errors"
)

func (r *patientRepository) Get(ctx context.Context, pesel string) (*model.Patient, error) {
	query := `
		SELECT pesel, first_name, last_name, COALESCE(email, '') AS email
		FROM patients
		WHERE pesel = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, pesel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}
