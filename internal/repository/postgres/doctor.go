package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/model"
	apperrors "github.com/edoc/booking-api/pkg/errors"
)

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT id, clinic_id, first_name, last_name, specialty
		FROM doctors
		WHERE id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, clinicName, specialty, nameFilter string) ([]*model.Doctor, error) {
	query := `
		SELECT d.id, d.clinic_id, d.first_name, d.last_name, d.specialty
		FROM doctors d
		JOIN clinics c ON c.id = d.clinic_id
		WHERE c.name = $1
		AND d.specialty = $2
		AND ($3 = '' OR d.first_name || ' ' || d.last_name ILIKE '%' || $3 || '%')
		ORDER BY d.last_name, d.first_name, d.id
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, clinicName, specialty, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
