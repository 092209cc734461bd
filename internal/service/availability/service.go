package availability

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/internal/repository"
	apperrors "github.com/edoc/booking-api/pkg/errors"
)

const (
	DefaultMaxFreeSlots = 20
	DefaultMaxScanDays  = 60
)

type Config struct {
	// MaxFreeSlots caps the result volume of one search.
	MaxFreeSlots int
	// MaxScanDays bounds the day-by-day scan. Without it a search that
	// matches nothing would never terminate.
	MaxScanDays int
	// DirectoryTTL is how long clinic/doctor directory lookups are cached.
	DirectoryTTL time.Duration
}

type SearchCriteria struct {
	Since      time.Time
	City       string
	Specialty  string
	ClinicName string
	DoctorName string
}

type Service struct {
	clinics      repository.ClinicRepository
	doctors      repository.DoctorRepository
	schedules    repository.ScheduleRepository
	appointments repository.AppointmentRepository
	directory    *gocache.Cache
	cfg          Config
}

func NewService(
	clinics repository.ClinicRepository,
	doctors repository.DoctorRepository,
	schedules repository.ScheduleRepository,
	appointments repository.AppointmentRepository,
	cfg Config,
) *Service {
	if cfg.MaxFreeSlots <= 0 {
		cfg.MaxFreeSlots = DefaultMaxFreeSlots
	}
	if cfg.MaxScanDays <= 0 {
		cfg.MaxScanDays = DefaultMaxScanDays
	}
	if cfg.DirectoryTTL <= 0 {
		cfg.DirectoryTTL = time.Minute
	}

	return &Service{
		clinics:      clinics,
		doctors:      doctors,
		schedules:    schedules,
		appointments: appointments,
		directory:    gocache.New(cfg.DirectoryTTL, 5*time.Minute),
		cfg:          cfg,
	}
}

// Search enumerates free slots across the cross product of matching clinics,
// matching doctors and increasing dates, first-found-first-filled up to the
// cap, then returns them in the total slot ordering. The scan stops at the
// day horizon, so a filter matching nothing yields an empty result instead
// of looping forever.
func (s *Service) Search(ctx context.Context, criteria SearchCriteria) ([]model.Slot, error) {
	clinics, err := s.lookupClinics(ctx, criteria.City, criteria.ClinicName)
	if err != nil {
		return nil, apperrors.Unavailable("clinic directory unavailable", err)
	}

	result := make([]model.Slot, 0, s.cfg.MaxFreeSlots)
	day := criteria.Since

	for scanned := 0; scanned < s.cfg.MaxScanDays; scanned++ {
		for _, clinic := range clinics {
			doctors, err := s.lookupDoctors(ctx, clinic.Name, criteria.Specialty, criteria.DoctorName)
			if err != nil {
				return nil, apperrors.Unavailable("doctor directory unavailable", err)
			}

			for _, doctor := range doctors {
				slots, err := s.GenerateFreeSlots(ctx, clinic, doctor, day)
				if err != nil {
					return nil, err
				}

				for _, slot := range slots {
					result = append(result, slot)
					if len(result) >= s.cfg.MaxFreeSlots {
						model.SortSlots(result)
						return result, nil
					}
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	log.Debug().
		Str("city", criteria.City).
		Str("specialty", criteria.Specialty).
		Int("found", len(result)).
		Int("max_scan_days", s.cfg.MaxScanDays).
		Msg("availability scan exhausted day horizon")

	model.SortSlots(result)
	return result, nil
}

// GenerateFreeSlots walks the doctor's working window on the given date in
// fixed visit-duration steps and emits the candidates with no existing
// booking. A final partial step that would cross the window end is
// excluded. No window means no slots.
func (s *Service) GenerateFreeSlots(ctx context.Context, clinic *model.Clinic, doctor *model.Doctor, day time.Time) ([]model.Slot, error) {
	window, err := s.schedules.GetWorkingWindow(ctx, clinic.ID, doctor.ID, day)
	if err != nil {
		return nil, apperrors.Unavailable("schedule provider unavailable", err)
	}
	if window == nil {
		return nil, nil
	}

	var free []model.Slot
	for t := window.Start; t.Before(window.End); t = t.Add(model.VisitDuration) {
		booked, err := s.appointments.Exists(ctx, clinic.ID, doctor.ID, t)
		if err != nil {
			return nil, apperrors.Unavailable("booking store unavailable", err)
		}
		if !booked {
			free = append(free, model.Slot{Clinic: clinic, Doctor: doctor, StartTime: t})
		}
	}
	return free, nil
}

func (s *Service) lookupClinics(ctx context.Context, city, nameFilter string) ([]*model.Clinic, error) {
	key := fmt.Sprintf("clinics|%s|%s", city, nameFilter)
	if cached, ok := s.directory.Get(key); ok {
		return cached.([]*model.Clinic), nil
	}

	clinics, err := s.clinics.List(ctx, city, nameFilter)
	if err != nil {
		return nil, err
	}
	s.directory.SetDefault(key, clinics)
	return clinics, nil
}

// lookupDoctors caches per-clinic directory queries: the day loop re-asks
// for the same clinic's doctors on every date it scans.
func (s *Service) lookupDoctors(ctx context.Context, clinicName, specialty, nameFilter string) ([]*model.Doctor, error) {
	key := fmt.Sprintf("doctors|%s|%s|%s", clinicName, specialty, nameFilter)
	if cached, ok := s.directory.Get(key); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.doctors.List(ctx, clinicName, specialty, nameFilter)
	if err != nil {
		return nil, err
	}
	s.directory.SetDefault(key, doctors)
	return doctors, nil
}
