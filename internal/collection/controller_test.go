package collection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/collection/mocks"
)

type note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (n note) RecordID() string { return n.ID }

func TestController_Load_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a"}, {ID: "b"}}, nil).Once()
	source.On("GetAll", ctx).Return([]note{{ID: "c"}}, nil).Once()

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))
	require.Len(t, ctrl.Records(), 2)

	require.NoError(t, ctrl.Load(ctx))
	records := ctrl.Records()
	require.Len(t, records, 1)
	require.Equal(t, "c", records[0].ID)
	require.Nil(t, ctrl.Err())
}

func TestController_Load_FailureKeepsRecords(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a"}}, nil).Once()
	source.On("GetAll", ctx).Return(nil, errors.New("boom")).Once()

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))

	err := ctrl.Load(ctx)
	require.Error(t, err)

	var opErr *collection.OpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, collection.OpLoad, opErr.Op)
	require.Equal(t, "notes", opErr.Collection)

	require.Len(t, ctrl.Records(), 1)
	require.NotNil(t, ctrl.Err())
	require.False(t, ctrl.Loading())
}

func TestController_Create_AppendsConfirmedRecord(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("Create", ctx, note{Title: "draft"}).Return(note{ID: "n1", Title: "draft"}, nil)

	ctrl := collection.NewController[note]("notes", source, nil)
	created, err := ctrl.Create(ctx, note{Title: "draft"})
	require.NoError(t, err)
	require.Equal(t, "n1", created.ID)

	records := ctrl.Records()
	require.Len(t, records, 1)
	require.Equal(t, "n1", records[0].ID)
}

func TestController_Create_FailureLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a"}}, nil)
	source.On("Create", ctx, mock.Anything).Return(nil, errors.New("rejected"))

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))
	before := ctrl.Records()

	_, err := ctrl.Create(ctx, note{Title: "draft"})
	require.Error(t, err)

	var opErr *collection.OpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, collection.OpCreate, opErr.Op)
	require.Equal(t, before, ctrl.Records())
}

func TestController_Update_ReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a", Title: "old"}, {ID: "b"}}, nil)
	source.On("Update", ctx, "a", collection.Patch{"title": "new"}).
		Return(note{ID: "a", Title: "new"}, nil)

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))

	merged, err := ctrl.Update(ctx, "a", collection.Patch{"title": "new"})
	require.NoError(t, err)
	require.Equal(t, "new", merged.Title)

	records := ctrl.Records()
	require.Equal(t, "a", records[0].ID)
	require.Equal(t, "new", records[0].Title)
	require.Equal(t, "b", records[1].ID)
}

func TestController_Update_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a", Title: "old"}}, nil)
	source.On("Update", ctx, "a", mock.Anything).Return(nil, errors.New("boom"))

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))
	before := ctrl.Records()

	_, err := ctrl.Update(ctx, "a", collection.Patch{"title": "new"})
	require.Error(t, err)
	require.Equal(t, before, ctrl.Records())
}

func TestController_Remove_DeletesById(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a"}, {ID: "b"}}, nil)
	source.On("Delete", ctx, "a").Return(true, nil)

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.Remove(ctx, "a"))

	records := ctrl.Records()
	require.Len(t, records, 1)
	require.Equal(t, "b", records[0].ID)
}

func TestController_Remove_MissingRecord(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a"}}, nil)
	source.On("Delete", ctx, "ghost").Return(false, nil)

	ctrl := collection.NewController[note]("notes", source, nil)
	require.NoError(t, ctrl.Load(ctx))

	err := ctrl.Remove(ctx, "ghost")
	require.ErrorIs(t, err, collection.ErrNotFound)
	require.Len(t, ctrl.Records(), 1)
}

func TestController_ErrClearedOnSuccess(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return(nil, errors.New("boom")).Once()
	source.On("GetAll", ctx).Return([]note{}, nil).Once()

	ctrl := collection.NewController[note]("notes", source, nil)
	require.Error(t, ctrl.Load(ctx))
	require.NotNil(t, ctrl.Err())

	require.NoError(t, ctrl.Refresh(ctx))
	require.Nil(t, ctrl.Err())
}

func TestController_Generation_TracksRecordChanges(t *testing.T) {
	ctx := context.Background()
	source := &mocks.Source[note]{}
	source.On("GetAll", ctx).Return([]note{{ID: "a"}}, nil).Once()
	source.On("GetAll", ctx).Return(nil, errors.New("boom")).Once()
	source.On("Create", ctx, mock.Anything).Return(note{ID: "b"}, nil)
	source.On("Update", ctx, "b", mock.Anything).Return(note{ID: "b", Title: "x"}, nil)
	source.On("Delete", ctx, "b").Return(true, nil)

	ctrl := collection.NewController[note]("notes", source, nil)
	gen := ctrl.Generation()

	require.NoError(t, ctrl.Load(ctx))
	require.Greater(t, ctrl.Generation(), gen)
	gen = ctrl.Generation()

	// A failed load leaves the records and the generation untouched.
	require.Error(t, ctrl.Load(ctx))
	require.Equal(t, gen, ctrl.Generation())

	_, err := ctrl.Create(ctx, note{ID: "b"})
	require.NoError(t, err)
	require.Greater(t, ctrl.Generation(), gen)
	gen = ctrl.Generation()

	_, err = ctrl.Update(ctx, "b", collection.Patch{"title": "x"})
	require.NoError(t, err)
	require.Greater(t, ctrl.Generation(), gen)
	gen = ctrl.Generation()

	require.NoError(t, ctrl.Remove(ctx, "b"))
	require.Greater(t, ctrl.Generation(), gen)
}
