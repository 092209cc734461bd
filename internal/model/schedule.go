package model

import "time"

// WorkingWindow is the open hours of a doctor at a clinic on a single date.
// Absence of a window (no clinic hours that day) is represented by a nil
// pointer at the repository boundary, never by a zero-length window.
type WorkingWindow struct {
	Start time.Time `db:"start_time" json:"start"`
	End   time.Time `db:"end_time" json:"end"`
}
