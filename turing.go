package turing

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// StepFunc observes the machine after every successful transition.
type StepFunc = runtime.StepFunc

var (
	// ErrTerminated is returned when stepping a machine that already halted or got stuck.
	ErrTerminated = runtime.ErrTerminated
	// ErrInvalidBudget is returned by Run for a negative step budget.
	ErrInvalidBudget = runtime.ErrInvalidBudget
)

// Machine is the high-level entry point for the Turing library.
// It wraps the internal runtime and provides a simplified API for consumers.
// A Machine is not safe for concurrent use; see pkg/session for shared access.
type Machine struct {
	runtime     *runtime.Engine
	program     *domain.Program
	runtimeOpts []runtime.EngineOption
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	chunk       int
	Name        string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithChunkSize sets how many cells the tape grows by at a time.
func WithChunkSize(n int) Option {
	return func(m *Machine) {
		m.chunk = n
	}
}

// WithEngineOptions passes raw runtime options through to the engine.
func WithEngineOptions(opts ...runtime.EngineOption) Option {
	return func(m *Machine) {
		m.runtimeOpts = append(m.runtimeOpts, opts...)
	}
}

// New builds a machine for program. The engine works on copies of the table and
// halting set; the machine starts in the initial state with the head at the
// middle of a blank tape.
func New(program *domain.Program, opts ...Option) (*Machine, error) {
	if err := program.Check(); err != nil {
		return nil, err
	}

	m := &Machine{
		program: program,
		Name:    program.Name,
	}
	for _, opt := range opts {
		opt(m)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if m.logger == nil {
		m.logger = logging.NewNop()
	}

	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewFromLines builds an unnamed machine from transition lines
// ("current read next write dir").
func NewFromLines(initial domain.StateID, tapeLength int, blank domain.Symbol, lines []string, halting []domain.StateID, opts ...Option) (*Machine, error) {
	table, err := compiler.NewParser().ParseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("invalid transitions: %w", err)
	}
	return New(&domain.Program{
		Initial:    initial,
		Blank:      blank,
		Halting:    domain.NewStateSet(halting...),
		TapeLength: tapeLength,
		Table:      table,
	}, opts...)
}

// Load reads a YAML or JSON program file and builds a machine for it.
func Load(path string, opts ...Option) (*Machine, error) {
	program, err := file.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(program, opts...)
}

// Reset discards the current run and starts over on a fresh tape.
func (m *Machine) Reset() error {
	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithLogger(m.logger),
		runtime.WithChunkSize(m.chunk),
	}
	// Append user-defined runtime options
	runtimeOpts = append(runtimeOpts, m.runtimeOpts...)

	eng, err := runtime.NewFromProgram(m.program, runtimeOpts...)
	if err != nil {
		return err
	}
	m.runtime = eng
	return nil
}

// Step performs one transition. See Run for the outcome kinds.
func (m *Machine) Step() (domain.Outcome, error) {
	return m.runtime.Step()
}

// Run steps until the machine halts, reaches an undefined transition or makes
// maxSteps transitions without halting. onStep may be nil.
func (m *Machine) Run(maxSteps int, onStep StepFunc) (domain.Outcome, error) {
	return m.runtime.Run(maxSteps, onStep)
}

// Validate checks the table against the program's alphabet (declared or inferred).
// Findings are advisory and do not prevent running.
func (m *Machine) Validate() []domain.Violation {
	return m.runtime.Validate(m.program.Symbols())
}

// ValidateAlphabet checks the table against an explicit alphabet.
func (m *Machine) ValidateAlphabet(alphabet []domain.Symbol) []domain.Violation {
	return m.runtime.Validate(alphabet)
}

// State is the current state.
func (m *Machine) State() domain.StateID { return m.runtime.State() }

// Head is the current head position.
func (m *Machine) Head() int { return m.runtime.Head() }

// Mode reports whether the machine is running, halted or stuck.
func (m *Machine) Mode() domain.Mode { return m.runtime.Mode() }

// Steps is the number of successful transitions so far.
func (m *Machine) Steps() int { return m.runtime.Steps() }

// Tape exposes the tape for rendering.
func (m *Machine) Tape() *tape.Tape { return m.runtime.Tape() }

// Program returns the program the machine was built from.
func (m *Machine) Program() *domain.Program { return m.program }
