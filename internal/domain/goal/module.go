package goal

import (
	"sync"
	"time"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Metrics summarizes the goal module over all loaded objectives and key
// results, regardless of the current search or filters.
type Metrics struct {
	Objectives               int            `json:"objectives"`
	KeyResults               int            `json:"key_results"`
	ObjectivesByStatus       map[string]int `json:"objectives_by_status"`
	AverageObjectiveProgress float64        `json:"average_objective_progress"`
	AverageKeyResultProgress float64        `json:"average_key_result_progress"`
	CompletionRate           float64        `json:"completion_rate"`
}

// NewModule wires the goal dashboard: objectives and key-results tabs,
// progress-status filtering, and the portfolio-level aggregates.
func NewModule(objectives collection.Source[Objective], keyResults collection.Source[KeyResult], telemetry collection.Telemetry) *dashboard.Module {
	objectiveCtrl := collection.NewController[Objective]("objectives", objectives, telemetry)
	keyResultCtrl := collection.NewController[KeyResult]("key_results", keyResults, telemetry)
	progress := objectiveProgressCache(keyResultCtrl)

	objectiveSchema := view.Schema[Objective]{
		Search: []func(Objective) string{
			func(o Objective) string { return o.Title },
			func(o Objective) string { return o.Description },
			func(o Objective) string { return o.Owner },
		},
		Filter: map[string]func(Objective) string{
			"quarter": func(o Objective) string { return o.Quarter },
			// Status derives from the key results loaded alongside.
			"status": func(o Objective) string {
				return string(StatusOf(progress()[o.ID]))
			},
		},
		Sort: map[string]func(a, b Objective) int{
			"title":   view.ByText(func(o Objective) string { return o.Title }),
			"created": view.ByTime(func(o Objective) time.Time { return o.CreatedAt }),
		},
	}

	keyResultSchema := view.Schema[KeyResult]{
		Search: []func(KeyResult) string{
			func(k KeyResult) string { return k.Title },
		},
		Filter: map[string]func(KeyResult) string{
			"objective": func(k KeyResult) string { return k.ObjectiveID },
			"status": func(k KeyResult) string {
				return string(StatusOf(k.Progress()))
			},
		},
		Sort: map[string]func(a, b KeyResult) int{
			"title":    view.ByText(func(k KeyResult) string { return k.Title }),
			"progress": view.ByNumber(KeyResult.Progress),
			"target":   view.ByNumber(func(k KeyResult) float64 { return k.Target }),
		},
	}

	metrics := func() any {
		objs := objectiveCtrl.Records()
		krs := keyResultCtrl.Records()
		idx := progress()
		byStatus := view.CountBy(objs, func(o Objective) string {
			return string(StatusOf(idx[o.ID]))
		})
		completed := byStatus[string(StatusCompleted)]
		return Metrics{
			Objectives:               len(objs),
			KeyResults:               len(krs),
			ObjectivesByStatus:       byStatus,
			AverageObjectiveProgress: AverageObjectiveProgress(objs, krs),
			AverageKeyResultProgress: AverageKeyResultProgress(krs),
			CompletionRate:           view.Ratio(float64(completed), float64(len(objs))),
		}
	}

	return dashboard.New("goals", metrics,
		dashboard.NewBoard(objectiveCtrl, objectiveSchema),
		dashboard.NewBoard(keyResultCtrl, keyResultSchema),
	)
}

// objectiveProgressCache returns a function yielding the per-objective
// progress index, rebuilt only when the key-result collection changes.
// The status filter reads it once per objective; without the cache every
// read would clone the whole key-result slice.
func objectiveProgressCache(krs *collection.Controller[KeyResult]) func() map[string]float64 {
	var (
		mu    sync.Mutex
		gen   uint64
		index map[string]float64
	)
	return func() map[string]float64 {
		mu.Lock()
		defer mu.Unlock()
		if current := krs.Generation(); index == nil || current != gen {
			index = ProgressByObjective(krs.Records())
			gen = current
		}
		return index
	}
}
