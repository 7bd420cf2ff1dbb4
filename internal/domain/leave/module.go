package leave

import (
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes all leave requests.
type Metrics struct {
	Requests     int            `json:"requests"`
	ByStatus     map[string]int `json:"by_status"`
	ApprovalRate float64        `json:"approval_rate"`
	DaysTaken    float64        `json:"days_taken"`
}

// NewModule wires the leave-management dashboard.
func NewModule(requests collection.Source[Request], telemetry collection.Telemetry) *dashboard.Module {
	ctrl := collection.NewController[Request]("leave_requests", requests, telemetry)

	schema := view.Schema[Request]{
		Search: []func(Request) string{
			func(r Request) string { return r.Employee },
		},
		Filter: map[string]func(Request) string{
			"status": func(r Request) string { return r.Status },
			"kind":   func(r Request) string { return r.Kind },
		},
		Sort: map[string]func(a, b Request) int{
			"employee": view.ByText(func(r Request) string { return r.Employee }),
			"from":     view.ByTime(func(r Request) time.Time { return r.From }),
			"days":     view.ByNumber(func(r Request) float64 { return r.Days }),
		},
	}

	metrics := func() any {
		all := ctrl.Records()
		byStatus := view.CountBy(all, func(r Request) string { return r.Status })
		daysTaken := view.Sum(all, func(r Request) float64 {
			if r.Status == StatusApproved {
				return r.Days
			}
			return 0
		})
		return Metrics{
			Requests:     len(all),
			ByStatus:     byStatus,
			ApprovalRate: view.Ratio(float64(byStatus[StatusApproved]), float64(len(all))),
			DaysTaken:    daysTaken,
		}
	}

	return dashboard.New("leave", metrics, dashboard.NewBoard(ctrl, schema))
}
