package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Registry holds every business module of the dashboard by name. Modules
// own their collections exclusively; the registry only routes.
type Registry struct {
	modules []*Module
	byName  map[string]*Module
}

// NewRegistry creates a registry over the given modules.
func NewRegistry(modules ...*Module) *Registry {
	r := &Registry{
		modules: modules,
		byName:  make(map[string]*Module, len(modules)),
	}
	for _, m := range modules {
		r.byName[m.Name()] = m
	}
	return r
}

// Get returns a module by name.
func (r *Registry) Get(name string) (*Module, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Names lists module names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		names[i] = m.Name()
	}
	return names
}

// Modules returns the modules in registration order.
func (r *Registry) Modules() []*Module {
	return r.modules
}

// LoadAll loads every module in parallel at startup. Failures are
// per-collection; the first one is returned.
func (r *Registry) LoadAll(ctx context.Context) error {
	g := new(errgroup.Group)
	for _, m := range r.modules {
		g.Go(func() error { return m.Load(ctx) })
	}
	return g.Wait()
}
