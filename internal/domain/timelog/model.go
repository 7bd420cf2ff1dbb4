package timelog

import "time"

// TimeLog is one completed block of tracked work, whole-minute
// granularity.
type TimeLog struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Project string    `json:"project,omitempty"`
	Minutes int       `json:"minutes"`
	Day     time.Time `json:"day,omitempty"`
}

func (t TimeLog) RecordID() string { return t.ID }

// Session is the single optional running timer, held outside any
// collection.
type Session struct {
	Label     string    `json:"label"`
	Project   string    `json:"project,omitempty"`
	StartedAt time.Time `json:"started_at"`
}
