package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkarpov/crewdeck/internal/collection"
)

type invoice struct {
	ID     string  `json:"id"`
	Client string  `json:"client"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

func (i invoice) RecordID() string { return i.ID }

func TestSource_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	created, err := source.Create(ctx, invoice{Client: "acme", Status: "draft", Amount: 100})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "acme", created.Client)

	all, err := source.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, created, all[0])
}

func TestSource_CreateKeepsProvidedID(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	created, err := source.Create(ctx, invoice{ID: "inv-1", Client: "acme"})
	require.NoError(t, err)
	require.Equal(t, "inv-1", created.ID)

	_, err = source.Create(ctx, invoice{ID: "inv-1", Client: "other"})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestSource_GetAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	for _, id := range []string{"a", "b", "c"} {
		_, err := source.Create(ctx, invoice{ID: id})
		require.NoError(t, err)
	}

	all, err := source.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", all[0].ID)
	require.Equal(t, "b", all[1].ID)
	require.Equal(t, "c", all[2].ID)
}

func TestSource_UpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	created, err := source.Create(ctx, invoice{Client: "acme", Status: "draft", Amount: 100})
	require.NoError(t, err)

	merged, err := source.Update(ctx, created.ID, collection.Patch{"status": "paid"})
	require.NoError(t, err)
	require.Equal(t, created.ID, merged.ID)
	require.Equal(t, "paid", merged.Status)
	// Unspecified fields persist.
	require.Equal(t, "acme", merged.Client)
	require.Equal(t, 100.0, merged.Amount)
}

func TestSource_UpdateIgnoresPatchedID(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	created, err := source.Create(ctx, invoice{Client: "acme"})
	require.NoError(t, err)

	merged, err := source.Update(ctx, created.ID, collection.Patch{"id": "hijack", "client": "beta"})
	require.NoError(t, err)
	require.Equal(t, created.ID, merged.ID)
	require.Equal(t, "beta", merged.Client)
}

func TestSource_UpdateMissingRecord(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	_, err := source.Update(ctx, "ghost", collection.Patch{"status": "paid"})
	require.ErrorIs(t, err, collection.ErrNotFound)
}

func TestSource_Delete(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	source := NewSource[invoice](db, "invoices")

	created, err := source.Create(ctx, invoice{Client: "acme"})
	require.NoError(t, err)

	ok, err := source.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = source.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)

	all, err := source.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSource_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	invoices := NewSource[invoice](db, "invoices")
	expenses := NewSource[invoice](db, "expenses")

	_, err := invoices.Create(ctx, invoice{ID: "shared"})
	require.NoError(t, err)
	_, err = expenses.Create(ctx, invoice{ID: "shared"})
	require.NoError(t, err)

	all, err := invoices.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
