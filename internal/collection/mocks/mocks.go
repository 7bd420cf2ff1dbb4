package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pkarpov/crewdeck/internal/collection"
)

// Source is a mock for collection.Source.
type Source[T collection.Record] struct {
	mock.Mock
}

func (m *Source[T]) GetAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]T); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Source[T]) Create(ctx context.Context, draft T) (T, error) {
	args := m.Called(ctx, draft)
	if rec, ok := args.Get(0).(T); ok {
		return rec, args.Error(1)
	}
	var zero T
	return zero, args.Error(1)
}

func (m *Source[T]) Update(ctx context.Context, id string, patch collection.Patch) (T, error) {
	args := m.Called(ctx, id, patch)
	if rec, ok := args.Get(0).(T); ok {
		return rec, args.Error(1)
	}
	var zero T
	return zero, args.Error(1)
}

func (m *Source[T]) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
