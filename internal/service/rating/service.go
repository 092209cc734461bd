package rating

import (
	"context"

	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/internal/repository"
)

type Service struct {
	repo repository.RatingRepository
}

func NewService(repo repository.RatingRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetForAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Rating, error) {
	return s.repo.Get(ctx, appointmentID)
}

func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Rating, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
