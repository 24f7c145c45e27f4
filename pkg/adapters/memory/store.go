package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.ProgramStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Program
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with programs.
func NewStore(programs ...*domain.Program) *Store {
	s := &Store{
		data: make(map[string]*domain.Program),
	}
	for _, p := range programs {
		s.data[p.Name] = clone(p)
	}
	return s
}

// Save persists the program in memory.
func (s *Store) Save(ctx context.Context, program *domain.Program) error {
	if program.Name == "" {
		return fmt.Errorf("%w: program name is required", domain.ErrInvalidProgram)
	}
	// Deep copy to ensure isolation, similar to serialization
	copied := clone(program)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[program.Name] = copied
	return nil
}

// Load retrieves the program from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	program, ok := s.data[name]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}

	// Copy on read so callers can't mutate store contents by pointer
	return clone(program), nil
}

// Delete removes the program.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored program names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(p *domain.Program) *domain.Program {
	out := *p
	out.Table = p.Table.Clone()
	out.Halting = p.Halting.Clone()
	out.Alphabet = append([]domain.Symbol(nil), p.Alphabet...)
	return &out
}
