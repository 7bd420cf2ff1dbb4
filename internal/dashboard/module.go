package dashboard

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/view"
)

// ErrUnknownTab indicates a collection key no pane of the module owns.
var ErrUnknownTab = errors.New("unknown collection tab")

// Module is one business module of the dashboard: a named set of
// collection panes, the module's transient view state, and a metrics
// reducer computed over the unfiltered collections.
type Module struct {
	name    string
	panes   []Pane
	byKey   map[string]Pane
	metrics func() any

	mu    sync.Mutex
	state view.State
}

// New creates a module. The first pane's key becomes the initial tab.
// metrics may be nil for modules without aggregates.
func New(name string, metrics func() any, panes ...Pane) *Module {
	m := &Module{
		name:    name,
		panes:   panes,
		byKey:   make(map[string]Pane, len(panes)),
		metrics: metrics,
	}
	for _, p := range panes {
		m.byKey[p.Key()] = p
	}
	if len(panes) > 0 {
		m.state = view.NewState(panes[0].Key())
	}
	return m
}

func (m *Module) Name() string { return m.name }

// Tabs lists the module's collection keys in pane order.
func (m *Module) Tabs() []string {
	keys := make([]string, len(m.panes))
	for i, p := range m.panes {
		keys[i] = p.Key()
	}
	return keys
}

// State returns the current view state.
func (m *Module) State() view.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetSearch sets the free-text search query.
func (m *Module) SetSearch(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.WithSearch(query)
}

// SetFilter sets the accepted values for one filter field. "all" or no
// values clears the constraint.
func (m *Module) SetFilter(field string, values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.WithFilter(field, values...)
}

// SetSort chooses the sort field and direction.
func (m *Module) SetSort(field string, dir view.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.WithSort(field, dir)
}

// SetDisplay tags the rendering mode; projected data is unaffected.
func (m *Module) SetDisplay(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.WithDisplay(mode)
}

// SetTab switches the active collection.
func (m *Module) SetTab(key string) error {
	if _, ok := m.byKey[key]; !ok {
		return ErrUnknownTab
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.WithTab(key)
	return nil
}

// Load fetches every pane's collection in parallel. Each pane keeps its
// last-known-good records on failure; the first failure is returned.
func (m *Module) Load(ctx context.Context) error {
	g := new(errgroup.Group)
	for _, p := range m.panes {
		g.Go(func() error { return p.Load(ctx) })
	}
	return g.Wait()
}

// Refresh is an alias for Load.
func (m *Module) Refresh(ctx context.Context) error { return m.Load(ctx) }

// Projection returns the active tab's filtered, searched, sorted records.
func (m *Module) Projection() []any {
	state := m.State()
	pane, ok := m.byKey[state.Tab]
	if !ok {
		return nil
	}
	return pane.Project(state)
}

// Metrics returns the module's aggregate metrics over the unfiltered
// collections, or nil when the module has none.
func (m *Module) Metrics() any {
	if m.metrics == nil {
		return nil
	}
	return m.metrics()
}

// Err returns the first pane error, or nil when every pane is healthy.
func (m *Module) Err() *collection.OpError {
	for _, p := range m.panes {
		if err := p.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Loading reports whether any pane has a load in flight.
func (m *Module) Loading() bool {
	for _, p := range m.panes {
		if p.Loading() {
			return true
		}
	}
	return false
}

// Create submits a draft to the named collection.
func (m *Module) Create(ctx context.Context, tab string, body []byte) (any, error) {
	pane, ok := m.byKey[tab]
	if !ok {
		return nil, ErrUnknownTab
	}
	return pane.CreateJSON(ctx, body)
}

// Update applies a partial update to a record of the named collection.
func (m *Module) Update(ctx context.Context, tab, id string, patch collection.Patch) (any, error) {
	pane, ok := m.byKey[tab]
	if !ok {
		return nil, ErrUnknownTab
	}
	return pane.UpdateJSON(ctx, id, patch)
}

// Remove deletes a record from the named collection.
func (m *Module) Remove(ctx context.Context, tab, id string) error {
	pane, ok := m.byKey[tab]
	if !ok {
		return ErrUnknownTab
	}
	return pane.Remove(ctx, id)
}
