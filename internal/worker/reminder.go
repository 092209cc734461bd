package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/edoc/booking-api/internal/service/reminder"
	"github.com/edoc/booking-api/pkg/queue"
)

var (
	remindersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_delivered_total",
		Help: "The total number of delivered appointment reminders",
	})
	remindersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_failed_total",
		Help: "The total number of reminders that failed to send",
	})
	dispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reminder_dispatch_duration_seconds",
		Help:    "Time spent draining due reminders",
		Buckets: prometheus.DefBuckets,
	})
)

const (
	defaultPollInterval = 30 * time.Second
	defaultBatchSize    = 100
)

// ReminderDispatcher drains the durable reminder queue and delivers due
// jobs. Delivery failures are counted, never retried: the queue claim is
// one-shot and the reminder is best-effort by design.
type ReminderDispatcher struct {
	queue     queue.Queue
	reminders *reminder.Service
	interval  time.Duration
	batchSize int64
}

func NewReminderDispatcher(q queue.Queue, reminders *reminder.Service, interval time.Duration, batchSize int64) *ReminderDispatcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &ReminderDispatcher{
		queue:     q,
		reminders: reminders,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (d *ReminderDispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", d.interval).Msg("reminder dispatcher started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reminder dispatcher stopped")
			return
		case <-ticker.C:
			d.dispatchDue(ctx)
		}
	}
}

func (d *ReminderDispatcher) dispatchDue(ctx context.Context) {
	start := time.Now()
	defer func() {
		dispatchDuration.Observe(time.Since(start).Seconds())
	}()

	jobs, err := d.queue.PopDue(ctx, time.Now(), d.batchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to drain reminder queue")
		return
	}

	for _, job := range jobs {
		if err := d.reminders.Deliver(ctx, job); err != nil {
			remindersFailed.Inc()
			continue
		}
		remindersDelivered.Inc()
	}
}
