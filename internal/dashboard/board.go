package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/view"
)

// Pane is one collection behind a module tab. It erases the record type so
// heterogeneous collections (contacts next to leads) can share a module.
type Pane interface {
	Key() string
	Load(ctx context.Context) error
	Loading() bool
	Err() *collection.OpError
	Project(state view.State) []any
	CreateJSON(ctx context.Context, body []byte) (any, error)
	UpdateJSON(ctx context.Context, id string, patch collection.Patch) (any, error)
	Remove(ctx context.Context, id string) error
}

// Board pairs a collection controller with the schema that declares its
// searchable, filterable, and sortable fields.
type Board[T collection.Record] struct {
	ctrl   *collection.Controller[T]
	schema view.Schema[T]
}

// NewBoard creates a pane for one record kind.
func NewBoard[T collection.Record](ctrl *collection.Controller[T], schema view.Schema[T]) *Board[T] {
	return &Board[T]{ctrl: ctrl, schema: schema}
}

// Controller exposes the typed controller for domain code (metrics
// reducers read unfiltered records through it).
func (b *Board[T]) Controller() *collection.Controller[T] { return b.ctrl }

func (b *Board[T]) Key() string { return b.ctrl.Key() }

func (b *Board[T]) Load(ctx context.Context) error { return b.ctrl.Load(ctx) }

func (b *Board[T]) Loading() bool { return b.ctrl.Loading() }

func (b *Board[T]) Err() *collection.OpError { return b.ctrl.Err() }

// Project returns the filtered, searched, sorted records for the given
// view state.
func (b *Board[T]) Project(state view.State) []any {
	items := view.Project(b.ctrl.Records(), b.schema, state)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// CreateJSON decodes a draft record and submits it through the controller.
func (b *Board[T]) CreateJSON(ctx context.Context, body []byte) (any, error) {
	var draft T
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", collection.ErrInvalidInput, err)
	}
	return b.ctrl.Create(ctx, draft)
}

// UpdateJSON applies a partial update through the controller.
func (b *Board[T]) UpdateJSON(ctx context.Context, id string, patch collection.Patch) (any, error) {
	return b.ctrl.Update(ctx, id, patch)
}

func (b *Board[T]) Remove(ctx context.Context, id string) error {
	return b.ctrl.Remove(ctx, id)
}
