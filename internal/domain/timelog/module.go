package timelog

import (
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes all time logs.
type Metrics struct {
	Entries          int            `json:"entries"`
	TotalMinutes     int            `json:"total_minutes"`
	MinutesByProject map[string]int `json:"minutes_by_project"`
	AverageMinutes   float64        `json:"average_minutes"`
}

// Module bundles the time-tracking dashboard with its tracker, since the
// active session lives outside the collection.
type Module struct {
	*dashboard.Module
	Tracker *Tracker
}

// NewModule wires the time-tracking dashboard. now may be nil to use the
// wall clock.
func NewModule(logs collection.Source[TimeLog], telemetry collection.Telemetry, now func() time.Time) *Module {
	ctrl := collection.NewController[TimeLog]("time_logs", logs, telemetry)

	schema := view.Schema[TimeLog]{
		Search: []func(TimeLog) string{
			func(l TimeLog) string { return l.Label },
			func(l TimeLog) string { return l.Project },
		},
		Filter: map[string]func(TimeLog) string{
			"project": func(l TimeLog) string { return l.Project },
		},
		Sort: map[string]func(a, b TimeLog) int{
			"day":     view.ByTime(func(l TimeLog) time.Time { return l.Day }),
			"minutes": view.ByNumber(func(l TimeLog) float64 { return float64(l.Minutes) }),
		},
	}

	metrics := func() any {
		all := ctrl.Records()
		byProject := map[string]int{}
		for _, l := range all {
			byProject[l.Project] += l.Minutes
		}
		return Metrics{
			Entries:          len(all),
			TotalMinutes:     int(view.Sum(all, func(l TimeLog) float64 { return float64(l.Minutes) })),
			MinutesByProject: byProject,
			AverageMinutes:   view.Mean(all, func(l TimeLog) float64 { return float64(l.Minutes) }),
		}
	}

	return &Module{
		Module:  dashboard.New("timelog", metrics, dashboard.NewBoard(ctrl, schema)),
		Tracker: NewTracker(ctrl, now),
	}
}
