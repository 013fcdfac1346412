package interp

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// Registry maps procedure names to procedures. Names are kept in sorted
// order, so listings are deterministic.
type Registry struct {
	procs *treemap.Map
}

// NewRegistry creates an empty procedure registry.
func NewRegistry() *Registry {
	return &Registry{
		procs: treemap.NewWithStringComparator(),
	}
}

// Lookup finds a procedure by name.
func (r *Registry) Lookup(name string) (Procedure, bool) {
	p, found := r.procs.Get(name)
	if !found {
		return nil, false
	}
	return p.(Procedure), true
}

// Has is a predicate: is a procedure with this name registered?
func (r *Registry) Has(name string) bool {
	_, found := r.procs.Get(name)
	return found
}

// Define adds a procedure. Names are unique, re-defining a name is an error.
func (r *Registry) Define(name string, p Procedure) error {
	if name == "" {
		return fmt.Errorf("procedure name must not be empty")
	}
	if r.Has(name) {
		return fmt.Errorf("procedure of name '%s' already exists", name)
	}
	r.procs.Put(name, p)
	return nil
}

// Names returns the names of all registered procedures, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.procs.Size())
	for _, k := range r.procs.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Each iterates over all procedures in name order.
func (r *Registry) Each(f func(string, Procedure)) {
	r.procs.Each(func(k, v interface{}) {
		f(k.(string), v.(Procedure))
	})
}

// Len returns the number of registered procedures.
func (r *Registry) Len() int {
	return r.procs.Size()
}

// Clear removes all procedures.
func (r *Registry) Clear() {
	r.procs.Clear()
}
