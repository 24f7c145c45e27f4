package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Builder manages the program construction.
type Builder struct {
	program domain.Program
	states  map[domain.StateID]*StateBuilder
	order   []domain.StateID
	// tapeSet records an explicit TapeLength call, so TapeLength(0) is kept.
	tapeSet bool
}

// New creates a new program builder.
func New(name string) *Builder {
	return &Builder{
		program: domain.Program{
			Name:    name,
			Halting: domain.NewStateSet(),
			Table:   domain.Table{},
		},
		states: make(map[domain.StateID]*StateBuilder),
	}
}

// Describe sets the program description.
func (b *Builder) Describe(text string) *Builder {
	b.program.Description = text
	return b
}

// Initial sets the start state. Without it, the first state added is used.
func (b *Builder) Initial(id domain.StateID) *Builder {
	b.program.Initial = id
	return b
}

// Blank sets the blank symbol. Defaults to domain.DefaultBlank.
func (b *Builder) Blank(s domain.Symbol) *Builder {
	b.program.Blank = s
	return b
}

// Alphabet declares the tape alphabet used by validation.
func (b *Builder) Alphabet(symbols ...domain.Symbol) *Builder {
	b.program.Alphabet = append([]domain.Symbol(nil), symbols...)
	return b
}

// TapeLength sets the initial tape length. Defaults to domain.DefaultTapeLength.
func (b *Builder) TapeLength(n int) *Builder {
	b.program.TapeLength = n
	b.tapeSet = true
	return b
}

// State returns the builder for a state, creating it on first use.
func (b *Builder) State(id domain.StateID) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Build assembles the program, applies defaults and checks it.
func (b *Builder) Build() (*domain.Program, error) {
	p := b.program
	p.Halting = b.program.Halting.Clone()
	p.Table = domain.Table{}
	for k, tr := range b.program.Table {
		p.Table[k] = tr
	}

	if p.Initial == "" && len(b.order) > 0 {
		p.Initial = b.order[0]
	}
	if p.Blank == "" {
		p.Blank = domain.DefaultBlank
	}
	if !b.tapeSet {
		p.TapeLength = domain.DefaultTapeLength
	}

	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("failed to build program %q: %w", p.Name, err)
	}
	return &p, nil
}

// MustBuild is like Build but panics on error. Intended for fixtures.
func (b *Builder) MustBuild() *domain.Program {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id      domain.StateID
	builder *Builder
}

// On defines the transition taken when this state reads a symbol.
// Defining the same (state, read) pair twice keeps the last definition.
func (s *StateBuilder) On(read, write domain.Symbol, move domain.Direction, next domain.StateID) *StateBuilder {
	s.builder.program.Table.Define(s.id, read, domain.Transition{Next: next, Write: write, Move: move})
	return s
}

// Halt marks the state as halting.
func (s *StateBuilder) Halt() *StateBuilder {
	s.builder.program.Halting.Add(s.id)
	return s
}

// Done returns the program builder, for chaining across states.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}
