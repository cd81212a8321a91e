package proc

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps procedure names to procedures.
type Registry struct {
	mu    sync.RWMutex
	procs map[string]Procedure
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[string]Procedure)}
}

// Set registers p under name, silently replacing an existing entry.
func (r *Registry) Set(name string, p Procedure) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[name] = p
	return r
}

// Get returns the procedure registered under name, or nil.
func (r *Registry) Get(name string) Procedure {
	p, _ := r.Lookup(name)
	return p
}

// Lookup returns the procedure registered under name and whether it exists.
func (r *Registry) Lookup(name string) (Procedure, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.procs[name]
	return p, ok
}

// Remove deletes the entry for name, if any.
func (r *Registry) Remove(name string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.procs, name)
	return r
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.procs))
}
