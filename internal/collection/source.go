package collection

import "context"

// Record is the minimal shape every domain record exposes to the engine.
type Record interface {
	RecordID() string
}

// Patch is a partial record: field name to new value. Unnamed fields keep
// their stored values; the data source performs the merge and returns the
// authoritative merged record.
type Patch map[string]any

// Source provides persistence for one collection of records. It is the
// external data collaborator: ids are assigned on create, updates are
// merged server-side, and it remains the source of truth across restarts.
type Source[T Record] interface {
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, patch Patch) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
}
