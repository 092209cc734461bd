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

func (r *ratingRepository) Get(ctx context.Context, appointmentID uuid.UUID) (*model.Rating, error) {
	query := `
		SELECT appointment_id, score, COALESCE(comment, '') AS comment, created_at
		FROM ratings
		WHERE appointment_id = $1
	`
	var rating model.Rating
	err := r.db.GetContext(ctx, &rating, query, appointmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("rating", err)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error) {
	query := `
		SELECT r.appointment_id, r.score, COALESCE(r.comment, '') AS comment, r.created_at
		FROM ratings r
		JOIN appointments a ON a.id = r.appointment_id
		WHERE a.doctor_id = $1
		ORDER BY r.created_at DESC
	`
	var ratings []*model.Rating
	err := r.db.SelectContext(ctx, &ratings, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}
