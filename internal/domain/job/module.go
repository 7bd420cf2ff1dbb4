package job

import (
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes all applications.
type Metrics struct {
	Applications int            `json:"applications"`
	ByStage      map[string]int `json:"by_stage"`
	OfferRate    float64        `json:"offer_rate"`
}

// NewModule wires the job-applications dashboard.
func NewModule(applications collection.Source[Application], telemetry collection.Telemetry) *dashboard.Module {
	ctrl := collection.NewController[Application]("applications", applications, telemetry)

	schema := view.Schema[Application]{
		Search: []func(Application) string{
			func(a Application) string { return a.Company },
			func(a Application) string { return a.Role },
			func(a Application) string { return a.Location },
		},
		Filter: map[string]func(Application) string{
			"stage": func(a Application) string { return a.Stage },
		},
		Sort: map[string]func(a, b Application) int{
			"company": view.ByText(func(a Application) string { return a.Company }),
			"applied": view.ByTime(func(a Application) time.Time { return a.AppliedAt }),
		},
	}

	metrics := func() any {
		all := ctrl.Records()
		byStage := view.CountBy(all, func(a Application) string { return a.Stage })
		return Metrics{
			Applications: len(all),
			ByStage:      byStage,
			OfferRate:    view.Ratio(float64(byStage[StageOffer]), float64(len(all))),
		}
	}

	return dashboard.New("jobs", metrics, dashboard.NewBoard(ctrl, schema))
}
