// Package registry holds named program factories, including the built-in
// demonstration machines.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Factory builds a fresh program on each call.
type Factory func() *domain.Program

// Registry manages the available programs.
type Registry struct {
	mu       sync.RWMutex
	programs map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		programs: make(map[string]Factory),
	}
}

// Register adds a program to the registry.
// If a program with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[name] = fn
}

// Get looks up a program by name and builds it.
// Returns an error wrapping domain.ErrProgramNotFound if the name is unknown.
func (r *Registry) Get(name string) (*domain.Program, error) {
	r.mu.RLock()
	fn, ok := r.programs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, name)
	}

	p := fn()
	p.Name = name
	return p, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.programs))
	for name := range r.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Programs builds every registered program, ordered by name.
func (r *Registry) Programs() []*domain.Program {
	names := r.Names()
	out := make([]*domain.Program, 0, len(names))
	for _, name := range names {
		if p, err := r.Get(name); err == nil {
			out = append(out, p)
		}
	}
	return out
}
