package reminder

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edoc/booking-api/internal/model"
	"github.com/edoc/booking-api/pkg/scheduler"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeEmail struct {
	mu    sync.Mutex
	sent  chan sentMail
	fail  bool
	calls int
}

func newFakeEmail() *fakeEmail {
	return &fakeEmail{sent: make(chan sentMail, 8)}
}

func (f *fakeEmail) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	f.calls++
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("smtp: connection refused")
	}
	f.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []model.ReminderJob
}

func (f *fakeQueue) Enqueue(_ context.Context, job model.ReminderJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) PopDue(_ context.Context, _ time.Time, _ int64) ([]model.ReminderJob, error) {
	return nil, nil
}

func (f *fakeQueue) Close() error { return nil }

func testJob(start time.Time) model.ReminderJob {
	return model.ReminderJob{
		AppointmentID: uuid.New(),
		Email:         "piotr@example.com",
		DoctorName:    "Anna Kowalska",
		Specialty:     "cardiology",
		StartTime:     start,
	}
}

func TestSchedule_PastFireTimeSendsImmediately(t *testing.T) {
	mail := newFakeEmail()
	svc := NewService(mail, scheduler.New(), nil, DefaultLeadTime, zerolog.Nop())

	// The appointment is sooner than the lead time, so the fire-time is
	// already in the past.
	svc.Schedule(context.Background(), testJob(time.Now().Add(time.Hour)))

	select {
	case sent := <-mail.sent:
		assert.Equal(t, "piotr@example.com", sent.to)
		assert.Contains(t, sent.subject, "Anna Kowalska")
		assert.Contains(t, sent.subject, "cardiology")
	case <-time.After(2 * time.Second):
		t.Fatal("reminder with past fire-time was not sent")
	}
}

func TestSchedule_QueuePreferredWhenConfigured(t *testing.T) {
	mail := newFakeEmail()
	q := &fakeQueue{}
	svc := NewService(mail, scheduler.New(), q, DefaultLeadTime, zerolog.Nop())

	start := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	svc.Schedule(context.Background(), testJob(start))

	require.Len(t, q.jobs, 1)
	assert.Equal(t, start.Add(-DefaultLeadTime), q.jobs[0].FireAt)
	assert.Zero(t, mail.calls, "queued reminder must not be sent inline")
}

func TestDeliver_SendFailureIsAbsorbed(t *testing.T) {
	mail := newFakeEmail()
	mail.fail = true
	svc := NewService(mail, scheduler.New(), nil, DefaultLeadTime, zerolog.Nop())

	err := svc.Deliver(context.Background(), testJob(time.Now()))
	assert.Error(t, err)

	// The timer path drops the error entirely; make sure scheduling a
	// failing reminder does not panic or block.
	svc.Schedule(context.Background(), testJob(time.Now()))
	time.Sleep(50 * time.Millisecond)
}

func TestDeliver_ComposesReminderBody(t *testing.T) {
	mail := newFakeEmail()
	svc := NewService(mail, scheduler.New(), nil, DefaultLeadTime, zerolog.Nop())

	start := time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, svc.Deliver(context.Background(), testJob(start)))

	sent := <-mail.sent
	assert.Contains(t, sent.body, "Anna Kowalska")
	assert.Contains(t, sent.body, "cardiology")
	assert.Contains(t, sent.body, "09:30")
}
