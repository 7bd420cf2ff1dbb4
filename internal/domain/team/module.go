package team

import (
	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes the whole roster.
type Metrics struct {
	Members     int            `json:"members"`
	ByRole      map[string]int `json:"by_role"`
	ActiveRatio float64        `json:"active_ratio"`
}

// NewModule wires the user-management dashboard.
func NewModule(members collection.Source[Member], telemetry collection.Telemetry) *dashboard.Module {
	ctrl := collection.NewController[Member]("members", members, telemetry)

	schema := view.Schema[Member]{
		Search: []func(Member) string{
			func(m Member) string { return m.Name },
			func(m Member) string { return m.Email },
		},
		Filter: map[string]func(Member) string{
			"role": func(m Member) string { return m.Role },
		},
		Sort: map[string]func(a, b Member) int{
			"name": view.ByText(func(m Member) string { return m.Name }),
			"role": view.ByText(func(m Member) string { return m.Role }),
		},
	}

	metrics := func() any {
		all := ctrl.Records()
		active := view.Count(all, func(m Member) bool { return m.Active })
		return Metrics{
			Members:     len(all),
			ByRole:      view.CountBy(all, func(m Member) string { return m.Role }),
			ActiveRatio: view.Ratio(float64(active), float64(len(all))),
		}
	}

	return dashboard.New("team", metrics, dashboard.NewBoard(ctrl, schema))
}
