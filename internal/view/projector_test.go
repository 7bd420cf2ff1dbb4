package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkarpov/crewdeck/internal/view"
)

type item struct {
	ID     string
	Name   string
	Email  string
	Status string
	Date   time.Time
	Amount float64
}

func testSchema() view.Schema[item] {
	return view.Schema[item]{
		Search: []func(item) string{
			func(i item) string { return i.Name },
			func(i item) string { return i.Email },
		},
		Filter: map[string]func(item) string{
			"status": func(i item) string { return i.Status },
		},
		Sort: map[string]func(a, b item) int{
			"name":   view.ByText(func(i item) string { return i.Name }),
			"date":   view.ByTime(func(i item) time.Time { return i.Date }),
			"amount": view.ByNumber(func(i item) float64 { return i.Amount }),
		},
	}
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestProject_EmptySearchMatchesEverything(t *testing.T) {
	items := []item{{ID: "1", Name: "Ada"}, {ID: "2", Name: "Bea"}}

	out := view.Project(items, testSchema(), view.NewState("items"))
	require.Equal(t, []string{"1", "2"}, ids(out))
}

func TestProject_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	items := []item{
		{ID: "1", Name: "Ada Lovelace"},
		{ID: "2", Name: "Bea", Email: "bea@ADA.example"},
		{ID: "3", Name: "Cid"},
	}

	out := view.Project(items, testSchema(), view.NewState("items").WithSearch("ada"))
	require.Equal(t, []string{"1", "2"}, ids(out))
}

func TestProject_SearchSkipsEmptyFieldWithoutExcluding(t *testing.T) {
	// Empty email must not exclude a record whose name matches.
	items := []item{{ID: "1", Name: "Ada", Email: ""}}

	out := view.Project(items, testSchema(), view.NewState("items").WithSearch("ada"))
	require.Equal(t, []string{"1"}, ids(out))
}

func TestProject_FilterAllIsNoop(t *testing.T) {
	items := []item{{ID: "1", Status: "open"}, {ID: "2", Status: "done"}}
	state := view.NewState("items").WithFilter("status", view.FilterAll)

	out := view.Project(items, testSchema(), state)
	require.Len(t, out, 2)
}

func TestProject_FilterMultiValueIsUnionWithinField(t *testing.T) {
	items := []item{
		{ID: "1", Status: "open"},
		{ID: "2", Status: "done"},
		{ID: "3", Status: "lost"},
	}
	state := view.NewState("items").WithFilter("status", "open", "done")

	out := view.Project(items, testSchema(), state)
	require.Equal(t, []string{"1", "2"}, ids(out))
}

func TestProject_AddingFiltersNarrows(t *testing.T) {
	schema := testSchema()
	schema.Filter["tier"] = func(i item) string {
		if i.Amount > 100 {
			return "big"
		}
		return "small"
	}
	items := []item{
		{ID: "1", Status: "open", Amount: 200},
		{ID: "2", Status: "open", Amount: 10},
		{ID: "3", Status: "done", Amount: 300},
	}

	base := view.NewState("items").WithFilter("status", "open")
	narrowed := base.WithFilter("tier", "big")

	wide := view.Project(items, schema, base)
	narrow := view.Project(items, schema, narrowed)
	require.Equal(t, []string{"1", "2"}, ids(wide))
	require.Equal(t, []string{"1"}, ids(narrow))
	require.Subset(t, ids(wide), ids(narrow))
}

func TestProject_SortByDateDescending(t *testing.T) {
	items := []item{
		{ID: "1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	state := view.NewState("items").WithSort("date", view.Descending)

	out := view.Project(items, testSchema(), state)
	require.Equal(t, []string{"2", "1"}, ids(out))
}

func TestProject_SortIsStableOnTies(t *testing.T) {
	items := []item{
		{ID: "1", Amount: 5},
		{ID: "2", Amount: 5},
		{ID: "3", Amount: 1},
	}
	state := view.NewState("items").WithSort("amount", view.Ascending)

	out := view.Project(items, testSchema(), state)
	require.Equal(t, []string{"3", "1", "2"}, ids(out))

	again := view.Project(items, testSchema(), state)
	require.Equal(t, ids(out), ids(again))
}

func TestProject_ReversedDirectionIsExactReverseWithoutTies(t *testing.T) {
	items := []item{
		{ID: "1", Amount: 3},
		{ID: "2", Amount: 1},
		{ID: "3", Amount: 2},
	}
	asc := view.Project(items, testSchema(), view.NewState("items").WithSort("amount", view.Ascending))
	desc := view.Project(items, testSchema(), view.NewState("items").WithSort("amount", view.Descending))

	require.Equal(t, []string{"2", "3", "1"}, ids(asc))
	require.Equal(t, []string{"1", "3", "2"}, ids(desc))
}

func TestProject_MissingSortValuesOrderFirst(t *testing.T) {
	items := []item{
		{ID: "1", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2"}, // zero date
	}
	out := view.Project(items, testSchema(), view.NewState("items").WithSort("date", view.Ascending))
	require.Equal(t, []string{"2", "1"}, ids(out))
}

func TestProject_UnknownSortFieldKeepsInputOrder(t *testing.T) {
	items := []item{{ID: "2"}, {ID: "1"}}
	out := view.Project(items, testSchema(), view.NewState("items").WithSort("missing", view.Ascending))
	require.Equal(t, []string{"2", "1"}, ids(out))
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	items := []item{{ID: "2", Amount: 2}, {ID: "1", Amount: 1}}
	_ = view.Project(items, testSchema(), view.NewState("items").WithSort("amount", view.Ascending))
	require.Equal(t, []string{"2", "1"}, ids(items))
}
