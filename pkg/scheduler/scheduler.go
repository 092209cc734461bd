// Package scheduler provides a one-shot deferred execution facility.
package scheduler

import (
	"time"
)

// Scheduler runs a function once at (or as soon as possible after) a given
// instant. Jobs are not persisted; pending jobs are lost on process exit.
type Scheduler interface {
	ScheduleOnce(at time.Time, fn func())
}

type timerScheduler struct{}

func New() Scheduler {
	return timerScheduler{}
}

// ScheduleOnce fires fn at the given instant. An instant already in the
// past fires immediately, not never.
func (timerScheduler) ScheduleOnce(at time.Time, fn func()) {
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, fn)
}
