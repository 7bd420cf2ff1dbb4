package crm

import (
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes the CRM over all loaded collections.
type Metrics struct {
	Contacts       int            `json:"contacts"`
	Leads          int            `json:"leads"`
	Interactions   int            `json:"interactions"`
	LeadsByStatus  map[string]int `json:"leads_by_status"`
	PipelineValue  float64        `json:"pipeline_value"`
	ConversionRate float64        `json:"conversion_rate"`
}

// NewModule wires the CRM dashboard: contacts, leads, and interactions.
func NewModule(
	contacts collection.Source[Contact],
	leads collection.Source[Lead],
	interactions collection.Source[Interaction],
	telemetry collection.Telemetry,
) *dashboard.Module {
	contactCtrl := collection.NewController[Contact]("contacts", contacts, telemetry)
	leadCtrl := collection.NewController[Lead]("leads", leads, telemetry)
	interactionCtrl := collection.NewController[Interaction]("interactions", interactions, telemetry)

	contactSchema := view.Schema[Contact]{
		Search: []func(Contact) string{
			func(c Contact) string { return c.Name },
			func(c Contact) string { return c.Email },
			func(c Contact) string { return c.Company },
		},
		Filter: map[string]func(Contact) string{
			"group": func(c Contact) string { return c.Group },
		},
		Sort: map[string]func(a, b Contact) int{
			"name":  view.ByText(func(c Contact) string { return c.Name }),
			"added": view.ByTime(func(c Contact) time.Time { return c.AddedAt }),
		},
	}

	leadSchema := view.Schema[Lead]{
		Search: []func(Lead) string{
			func(l Lead) string { return l.Title },
			func(l Lead) string { return l.Source },
		},
		Filter: map[string]func(Lead) string{
			"status": func(l Lead) string { return l.Status },
			"source": func(l Lead) string { return l.Source },
		},
		Sort: map[string]func(a, b Lead) int{
			"title":   view.ByText(func(l Lead) string { return l.Title }),
			"value":   view.ByNumber(func(l Lead) float64 { return l.Value }),
			"created": view.ByTime(func(l Lead) time.Time { return l.CreatedAt }),
		},
	}

	interactionSchema := view.Schema[Interaction]{
		Search: []func(Interaction) string{
			func(i Interaction) string { return i.Notes },
		},
		Filter: map[string]func(Interaction) string{
			"kind":    func(i Interaction) string { return i.Kind },
			"contact": func(i Interaction) string { return i.ContactID },
		},
		Sort: map[string]func(a, b Interaction) int{
			"at": view.ByTime(func(i Interaction) time.Time { return i.At }),
		},
	}

	metrics := func() any {
		allLeads := leadCtrl.Records()
		byStatus := view.CountBy(allLeads, func(l Lead) string { return l.Status })
		return Metrics{
			Contacts:      contactCtrl.Len(),
			Leads:         len(allLeads),
			Interactions:  interactionCtrl.Len(),
			LeadsByStatus: byStatus,
			PipelineValue: view.Sum(allLeads, func(l Lead) float64 { return l.Value }),
			ConversionRate: view.Ratio(
				float64(byStatus[LeadConverted]),
				float64(len(allLeads)),
			),
		}
	}

	return dashboard.New("crm", metrics,
		dashboard.NewBoard(contactCtrl, contactSchema),
		dashboard.NewBoard(leadCtrl, leadSchema),
		dashboard.NewBoard(interactionCtrl, interactionSchema),
	)
}
