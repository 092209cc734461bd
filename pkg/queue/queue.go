// Package queue provides the durable deferred reminder queue.
package queue

import (
	"context"
	"time"

	"github.com/edoc/booking-api/internal/model"
)

// Queue stores reminder jobs until their fire-time. PopDue both returns and
// claims due jobs, so concurrent consumers never deliver the same reminder
// twice.
type Queue interface {
	Enqueue(ctx context.Context, job model.ReminderJob) error
	PopDue(ctx context.Context, now time.Time, limit int64) ([]model.ReminderJob, error)
	Close() error
}
