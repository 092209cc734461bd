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

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, city
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	err := r.db.GetContext(ctx, &clinic, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("clinic", err)
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) List(ctx context.Context, city, nameFilter string) ([]*model.Clinic, error) {
	query := `
		SELECT id, name, city
		FROM clinics
		WHERE city = $1
		AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name, id
	`
	var clinics []*model.Clinic
	err := r.db.SelectContext(ctx, &clinics, query, city, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}
