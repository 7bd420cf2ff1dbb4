package goal

import "github.com/pkarpov/crewdeck/internal/view"

// Progress returns the key result's completion percentage,
// current/target*100. A zero target yields 0 rather than dividing by
// zero; aggregates must stay finite.
func (k KeyResult) Progress() float64 {
	if k.Target == 0 {
		return 0
	}
	return k.Current / k.Target * 100
}

// Progress returns the arithmetic mean of the objective's key results'
// raw progress values. Over-achieved key results are not clamped before
// averaging, so an objective can sit above 100. No key results means 0.
func (o Objective) Progress(krs []KeyResult) float64 {
	var own []KeyResult
	for _, kr := range krs {
		if kr.ObjectiveID == o.ID {
			own = append(own, kr)
		}
	}
	return view.Mean(own, KeyResult.Progress)
}

// ProgressByObjective computes every objective's progress in one pass
// over the key results, keyed by objective id. Objectives absent from
// the map have no key results and sit at 0.
func ProgressByObjective(krs []KeyResult) map[string]float64 {
	grouped := make(map[string][]KeyResult)
	for _, kr := range krs {
		grouped[kr.ObjectiveID] = append(grouped[kr.ObjectiveID], kr)
	}
	progress := make(map[string]float64, len(grouped))
	for id, own := range grouped {
		progress[id] = view.Mean(own, KeyResult.Progress)
	}
	return progress
}

// AverageObjectiveProgress averages progress across all objectives, 0
// when none are loaded.
func AverageObjectiveProgress(objectives []Objective, krs []KeyResult) float64 {
	return view.Mean(objectives, func(o Objective) float64 { return o.Progress(krs) })
}

// AverageKeyResultProgress averages raw progress across all key results.
func AverageKeyResultProgress(krs []KeyResult) float64 {
	return view.Mean(krs, KeyResult.Progress)
}

// StatusOf buckets a progress value for filtering.
func StatusOf(progress float64) Status {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusActive
	default:
		return StatusPaused
	}
}

// DisplayProgress clamps a progress value to [0, 100] for rendering.
// Aggregation always uses the raw value.
func DisplayProgress(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
