package finance

import (
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes all invoices, including ones the current view hides.
type Metrics struct {
	Invoices          int            `json:"invoices"`
	ByStatus          map[string]int `json:"by_status"`
	TotalAmount       float64        `json:"total_amount"`
	OutstandingAmount float64        `json:"outstanding_amount"`
	PaidRate          float64        `json:"paid_rate"`
}

// NewModule wires the finance dashboard.
func NewModule(invoices collection.Source[Invoice], telemetry collection.Telemetry) *dashboard.Module {
	ctrl := collection.NewController[Invoice]("invoices", invoices, telemetry)

	schema := view.Schema[Invoice]{
		Search: []func(Invoice) string{
			func(i Invoice) string { return i.Client },
			func(i Invoice) string { return i.Number },
		},
		Filter: map[string]func(Invoice) string{
			"status": func(i Invoice) string { return i.Status },
			"client": func(i Invoice) string { return i.Client },
		},
		Sort: map[string]func(a, b Invoice) int{
			"client": view.ByText(func(i Invoice) string { return i.Client }),
			"amount": view.ByNumber(func(i Invoice) float64 { return i.Amount }),
			"issued": view.ByTime(func(i Invoice) time.Time { return i.IssuedAt }),
			"due":    view.ByTime(func(i Invoice) time.Time { return i.DueAt }),
		},
	}

	metrics := func() any {
		all := ctrl.Records()
		byStatus := view.CountBy(all, func(i Invoice) string { return i.Status })
		outstanding := view.Sum(all, func(i Invoice) float64 {
			if i.Status == StatusSent || i.Status == StatusOverdue {
				return i.Amount
			}
			return 0
		})
		return Metrics{
			Invoices:          len(all),
			ByStatus:          byStatus,
			TotalAmount:       view.Sum(all, func(i Invoice) float64 { return i.Amount }),
			OutstandingAmount: outstanding,
			PaidRate:          view.Ratio(float64(byStatus[StatusPaid]), float64(len(all))),
		}
	}

	return dashboard.New("finance", metrics, dashboard.NewBoard(ctrl, schema))
}
