package collection

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Controller owns the in-memory copy of one collection and mediates CRUD
// against its Source. Mutations are confirmed-then-applied: nothing is
// written locally until the source reports success, so a failed call leaves
// the collection exactly as it was and surfaces a single OpError.
//
// Completions of independent requests may land on any goroutine; the mutex
// applies them in completion order, which gives last-writer-wins per id.
type Controller[T Record] struct {
	key       string
	source    Source[T]
	telemetry Telemetry

	mu      sync.Mutex
	records []T
	err     *OpError
	loading bool
	gen     uint64
}

// NewController creates a controller for one collection. telemetry may be
// nil.
func NewController[T Record](key string, source Source[T], telemetry Telemetry) *Controller[T] {
	if telemetry == nil {
		telemetry = noopTelemetry{}
	}
	return &Controller[T]{key: key, source: source, telemetry: telemetry}
}

// Key returns the collection key this controller owns.
func (c *Controller[T]) Key() string { return c.key }

// Records returns a copy of the current collection in load/append order.
func (c *Controller[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

// Len returns the current number of records.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Err returns the most recent operation error, or nil after a success.
func (c *Controller[T]) Err() *OpError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Generation increments every time the records change. Callers deriving
// indexes from Records can compare generations instead of rebuilding on
// every read.
func (c *Controller[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Loading reports whether a load is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Load replaces the collection wholesale with the source's contents
// (last-load-wins). On failure the previous records are kept untouched.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	start := time.Now()
	records, err := c.source.GetAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = opError(OpLoad, c.key, err)
		c.telemetry.Observe(OpLoad, c.key, "failure", time.Since(start))
		return c.err
	}
	c.records = records
	c.gen++
	c.err = nil
	c.telemetry.Observe(OpLoad, c.key, "success", time.Since(start))
	return nil
}

// Refresh is an alias for Load, used after a mutation when a module
// prefers re-reading the source over trusting the mutation's return value.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// Create submits a draft and appends the record the source returns. There
// is no optimistic local insert before confirmation.
func (c *Controller[T]) Create(ctx context.Context, draft T) (T, error) {
	start := time.Now()
	created, err := c.source.Create(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		var zero T
		c.err = opError(OpCreate, c.key, err)
		c.telemetry.Observe(OpCreate, c.key, "failure", time.Since(start))
		return zero, c.err
	}
	c.records = append(c.records, created)
	c.gen++
	c.err = nil
	c.telemetry.Observe(OpCreate, c.key, "success", time.Since(start))
	return created, nil
}

// Update sends a partial update and replaces the matching record in place
// with the merged record the source returns.
func (c *Controller[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	start := time.Now()
	merged, err := c.source.Update(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		var zero T
		c.err = opError(OpUpdate, c.key, err)
		c.telemetry.Observe(OpUpdate, c.key, "failure", time.Since(start))
		return zero, c.err
	}
	for i, rec := range c.records {
		if rec.RecordID() == id {
			c.records[i] = merged
			c.gen++
			break
		}
	}
	c.err = nil
	c.telemetry.Observe(OpUpdate, c.key, "success", time.Since(start))
	return merged, nil
}

// Remove deletes a record by id. A late completion for a record the source
// no longer has removes nothing and reports the source's error.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	start := time.Now()
	ok, err := c.source.Delete(ctx, id)
	if err == nil && !ok {
		err = ErrNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = opError(OpDelete, c.key, err)
		c.telemetry.Observe(OpDelete, c.key, "failure", time.Since(start))
		return c.err
	}
	c.records = slices.DeleteFunc(c.records, func(rec T) bool {
		return rec.RecordID() == id
	})
	c.gen++
	c.err = nil
	c.telemetry.Observe(OpDelete, c.key, "success", time.Since(start))
	return nil
}
