package generate

import (
	"sort"
	"sync"

	"github.com/syssam/bakery/schema"
)

// Func produces a plausible value for a field. Generators are pure:
// they read only the given descriptor (enum values, size cap) and
// never touch shared state.
type Func func(f *schema.Field) (any, error)

// Registry maps field type tags to generators. A registry is safe for
// concurrent resolution; registration is meant to happen at startup,
// before builds run concurrently.
type Registry struct {
	mu  sync.RWMutex
	fns map[schema.Type]Func
}

// NewRegistry returns a registry seeded with the built-in generators
// for every supported field type.
func NewRegistry() *Registry {
	r := Empty()
	for t, fn := range builtins() {
		r.fns[t] = fn
	}
	return r
}

// Empty returns a registry with no generators registered.
func Empty() *Registry {
	return &Registry{fns: make(map[schema.Type]Func)}
}

// Register sets the generator for the given type tag, replacing any
// existing one. The last registration wins.
func (r *Registry) Register(t schema.Type, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[t] = fn
}

// Resolve returns the generator for the given type tag.
func (r *Registry) Resolve(t schema.Type) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[t]
	return fn, ok
}

// Clone returns a copy of the registry. Tests use clones to register
// generators without affecting the shared registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := Empty()
	for t, fn := range r.fns {
		c.fns[t] = fn
	}
	return c
}

// Types returns the sorted type tags with a registered generator.
func (r *Registry) Types() []schema.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]schema.Type, 0, len(r.fns))
	for t := range r.fns {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
