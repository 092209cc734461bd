package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleOnce_PastInstantFiresImmediately(t *testing.T) {
	fired := make(chan struct{})

	New().ScheduleOnce(time.Now().Add(-time.Hour), func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job scheduled in the past did not fire")
	}
}

func TestScheduleOnce_FutureInstantFires(t *testing.T) {
	fired := make(chan time.Time, 1)
	start := time.Now()

	New().ScheduleOnce(start.Add(50*time.Millisecond), func() {
		fired <- time.Now()
	})

	select {
	case at := <-fired:
		require.True(t, at.Sub(start) >= 40*time.Millisecond, "fired too early")
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire")
	}
}
