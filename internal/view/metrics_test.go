package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkarpov/crewdeck/internal/view"
)

func TestCountBy(t *testing.T) {
	items := []item{
		{Status: "open"},
		{Status: "open"},
		{Status: "done"},
	}
	counts := view.CountBy(items, func(i item) string { return i.Status })
	require.Equal(t, map[string]int{"open": 2, "done": 1}, counts)
}

func TestSum(t *testing.T) {
	items := []item{{Amount: 1.5}, {Amount: 2.5}}
	require.Equal(t, 4.0, view.Sum(items, func(i item) float64 { return i.Amount }))
}

func TestRatio_ZeroDenominator(t *testing.T) {
	require.Equal(t, 0.0, view.Ratio(3, 0))
	require.Equal(t, 0.5, view.Ratio(1, 2))
}

func TestMean_EmptyIsZero(t *testing.T) {
	require.Equal(t, 0.0, view.Mean(nil, func(i item) float64 { return i.Amount }))

	items := []item{{Amount: 2}, {Amount: 4}}
	require.Equal(t, 3.0, view.Mean(items, func(i item) float64 { return i.Amount }))
}
