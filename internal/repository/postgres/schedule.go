package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edoc/booking-api/internal/model"
)

// GetWorkingWindow returns the doctor's open hours at a clinic on the given
// date, or nil when there are no clinic hours that day.
func (r *scheduleRepository) GetWorkingWindow(ctx context.Context, clinicID, doctorID uuid.UUID, day time.Time) (*model.WorkingWindow, error) {
	query := `
		SELECT start_time, end_time
		FROM schedules
		WHERE clinic_id = $1
		AND doctor_id = $2
		AND day = $3::date
	`
	var window model.WorkingWindow
	err := r.db.GetContext(ctx, &window, query, clinicID, doctorID, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get working window: %w", err)
	}
	return &window, nil
}
