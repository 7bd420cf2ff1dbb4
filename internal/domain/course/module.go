package course

import (
	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes all courses.
type Metrics struct {
	Courses       int     `json:"courses"`
	TotalStudents int     `json:"total_students"`
	TotalRevenue  float64 `json:"total_revenue"`
	AverageRating float64 `json:"average_rating"`
}

// NewModule wires the courses dashboard.
func NewModule(courses collection.Source[Course], telemetry collection.Telemetry) *dashboard.Module {
	ctrl := collection.NewController[Course]("courses", courses, telemetry)

	schema := view.Schema[Course]{
		Search: []func(Course) string{
			func(c Course) string { return c.Title },
			func(c Course) string { return c.Category },
		},
		Filter: map[string]func(Course) string{
			"status":   func(c Course) string { return c.Status },
			"category": func(c Course) string { return c.Category },
		},
		Sort: map[string]func(a, b Course) int{
			"title":    view.ByText(func(c Course) string { return c.Title }),
			"price":    view.ByNumber(func(c Course) float64 { return c.Price }),
			"students": view.ByNumber(func(c Course) float64 { return float64(c.Students) }),
			"rating":   view.ByNumber(func(c Course) float64 { return c.Rating }),
		},
	}

	metrics := func() any {
		all := ctrl.Records()
		return Metrics{
			Courses:       len(all),
			TotalStudents: int(view.Sum(all, func(c Course) float64 { return float64(c.Students) })),
			TotalRevenue:  view.Sum(all, Course.Revenue),
			AverageRating: view.Mean(all, func(c Course) float64 { return c.Rating }),
		}
	}

	return dashboard.New("courses", metrics, dashboard.NewBoard(ctrl, schema))
}
