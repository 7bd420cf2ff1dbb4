package goal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkarpov/crewdeck/internal/domain/goal"
)

func TestKeyResultProgress(t *testing.T) {
	kr := goal.KeyResult{Current: 50, Target: 100}
	require.Equal(t, 50.0, kr.Progress())

	over := goal.KeyResult{Current: 150, Target: 100}
	require.Equal(t, 150.0, over.Progress())
}

func TestKeyResultProgress_ZeroTargetIsZero(t *testing.T) {
	kr := goal.KeyResult{Current: 42, Target: 0}
	require.Equal(t, 0.0, kr.Progress())
}

func TestObjectiveProgress_UnclampedMean(t *testing.T) {
	// An over-achieved key result pulls the average above its siblings:
	// (50 + 150) / 2 = 100.
	obj := goal.Objective{ID: "o1"}
	krs := []goal.KeyResult{
		{ID: "k1", ObjectiveID: "o1", Current: 50, Target: 100},
		{ID: "k2", ObjectiveID: "o1", Current: 150, Target: 100},
		{ID: "k3", ObjectiveID: "other", Current: 10, Target: 100},
	}
	require.Equal(t, 100.0, obj.Progress(krs))
}

func TestObjectiveProgress_NoKeyResultsIsZero(t *testing.T) {
	obj := goal.Objective{ID: "o1"}
	require.Equal(t, 0.0, obj.Progress(nil))
}

func TestPortfolioAverages(t *testing.T) {
	objectives := []goal.Objective{{ID: "o1"}, {ID: "o2"}}
	krs := []goal.KeyResult{
		{ObjectiveID: "o1", Current: 100, Target: 100},
		{ObjectiveID: "o2", Current: 25, Target: 100},
	}
	require.Equal(t, 62.5, goal.AverageObjectiveProgress(objectives, krs))
	require.Equal(t, 62.5, goal.AverageKeyResultProgress(krs))

	require.Equal(t, 0.0, goal.AverageObjectiveProgress(nil, nil))
	require.Equal(t, 0.0, goal.AverageKeyResultProgress(nil))
}

func TestStatusBuckets(t *testing.T) {
	require.Equal(t, goal.StatusPaused, goal.StatusOf(0))
	require.Equal(t, goal.StatusActive, goal.StatusOf(0.1))
	require.Equal(t, goal.StatusActive, goal.StatusOf(99.9))
	require.Equal(t, goal.StatusCompleted, goal.StatusOf(100))
	require.Equal(t, goal.StatusCompleted, goal.StatusOf(150))
}

func TestDisplayProgressClamps(t *testing.T) {
	require.Equal(t, 0.0, goal.DisplayProgress(-5))
	require.Equal(t, 42.0, goal.DisplayProgress(42))
	require.Equal(t, 100.0, goal.DisplayProgress(150))
}
