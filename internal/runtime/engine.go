package runtime

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// ErrTerminated is returned when stepping an engine that already reported Halted or Undefined.
// Entering a halting state is not enough: the next Step still reports Halted once.
// It signals a caller bug, so it is an error rather than a no-op.
var ErrTerminated = errors.New("machine already terminated")

// ErrInvalidBudget is returned by Run for a negative step budget.
var ErrInvalidBudget = errors.New("step budget must not be negative")

// StepFunc observes the machine after every successful transition.
type StepFunc func(head int, t *tape.Tape)

// Engine is the core state machine runner.
// It owns one tape and mutates it in place; it is not safe for concurrent use.
type Engine struct {
	state   domain.StateID
	head    int
	tape    *tape.Tape
	halting domain.StateSet
	table   domain.Table
	mode    domain.Mode
	steps   int
	chunk   int

	// done is set once Halted or Undefined has been reported.
	done bool

	name   string
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithName labels events and logs with the program name.
func WithName(name string) EngineOption {
	return func(e *Engine) {
		e.name = name
	}
}

// NewEngine creates an engine over t. The head starts at the middle of the tape's
// materialized span. A nil table or halting set is treated as empty.
func NewEngine(initial domain.StateID, t *tape.Tape, table domain.Table, halting domain.StateSet, opts ...EngineOption) *Engine {
	if table == nil {
		table = domain.NewTable()
	}
	if halting == nil {
		halting = domain.NewStateSet()
	}
	lo, hi := t.Span()

	e := &Engine{
		state:   initial,
		head:    lo + (hi-lo+1)/2,
		tape:    t,
		halting: halting,
		table:   table,
		mode:    domain.ModeRunning,
		logger:  logging.NewNop(),
	}
	if halting.Contains(initial) {
		e.mode = domain.ModeHalted
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.name != "" {
		e.logger = e.logger.With("machine", e.name)
	}
	return e
}

// Step performs one transition.
//
// Order is fixed: halting check, read, lookup, then state update, write at the
// pre-move head position and finally the head move.
func (e *Engine) Step() (domain.Outcome, error) {
	if e.done {
		return domain.Outcome{}, fmt.Errorf("%w: mode is %s", ErrTerminated, e.mode)
	}

	if e.halting.Contains(e.state) {
		return e.halt(), nil
	}

	read := e.tape.Read(e.head)
	tr, ok := e.table.Lookup(e.state, read)
	if !ok {
		return e.block(read), nil
	}

	from := e.state
	e.state = tr.Next
	e.tape.Write(e.head, tr.Write)
	e.head += tr.Move.Offset()
	e.steps++
	if e.halting.Contains(e.state) {
		e.mode = domain.ModeHalted
	}

	e.logger.Debug("step",
		"step", e.steps,
		"from", from,
		"to", tr.Next,
		"read", read,
		"write", tr.Write,
		"move", tr.Move,
		"head", e.head,
	)
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(&domain.StepEvent{
			EventBase: e.event(domain.EventStep),
			Step:      e.steps,
			From:      from,
			To:        tr.Next,
			Read:      read,
			Write:     tr.Write,
			Move:      tr.Move,
			Head:      e.head,
		})
	}

	return domain.Outcome{Kind: domain.OutcomeAdvanced, Steps: e.steps}, nil
}

// Run steps the machine until it halts, blocks on an undefined transition, or
// maxSteps successful transitions happen without halting (BudgetExceeded).
// onStep, when non-nil, is called after every Advanced step.
func (e *Engine) Run(maxSteps int, onStep StepFunc) (domain.Outcome, error) {
	if maxSteps < 0 {
		return domain.Outcome{}, fmt.Errorf("%w: %d", ErrInvalidBudget, maxSteps)
	}
	if e.done {
		return domain.Outcome{}, fmt.Errorf("%w: mode is %s", ErrTerminated, e.mode)
	}

	for advanced := 0; ; advanced++ {
		// Halting wins over the budget: reaching H on the last allowed step is a halt.
		if e.halting.Contains(e.state) {
			return e.halt(), nil
		}
		if advanced == maxSteps {
			out := domain.Outcome{Kind: domain.OutcomeBudgetExceeded, Steps: e.steps}
			e.logger.Info("step budget exhausted", "max_steps", maxSteps, "state", e.state, "head", e.head)
			e.emitOutcome(out)
			return out, nil
		}

		out, err := e.Step()
		if err != nil {
			return out, err
		}
		if out.Kind != domain.OutcomeAdvanced {
			return out, nil
		}
		if onStep != nil {
			onStep(e.head, e.tape)
		}
	}
}

func (e *Engine) halt() domain.Outcome {
	e.mode = domain.ModeHalted
	e.done = true
	out := domain.Outcome{Kind: domain.OutcomeHalted, Steps: e.steps}
	e.logger.Info("machine halted", "state", e.state, "steps", e.steps, "head", e.head)
	e.emitOutcome(out)
	return out
}

func (e *Engine) block(read domain.Symbol) domain.Outcome {
	e.mode = domain.ModeStuck
	e.done = true
	out := domain.Outcome{
		Kind:    domain.OutcomeUndefined,
		Detail:  fmt.Sprintf("the transition for state '%s' when '%s' is read is never defined", e.state, read),
		Missing: &domain.Key{State: e.state, Read: read},
		Steps:   e.steps,
	}
	e.logger.Info("transition undefined", "state", e.state, "read", read, "steps", e.steps)
	e.emitOutcome(out)
	return out
}

func (e *Engine) emitOutcome(out domain.Outcome) {
	if e.hooks.OnOutcome == nil {
		return
	}
	e.hooks.OnOutcome(&domain.OutcomeEvent{
		EventBase: e.event(domain.EventOutcome),
		Outcome:   out,
		State:     e.state,
	})
}

func (e *Engine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Machine: e.name}
}

// State is the current state identifier.
func (e *Engine) State() domain.StateID { return e.state }

// Head is the current head position.
func (e *Engine) Head() int { return e.head }

// Mode is the current conceptual mode. It is halted as soon as the machine enters a
// halting state, one Step before the Halted outcome is reported.
func (e *Engine) Mode() domain.Mode { return e.mode }

// Steps is the number of successful transitions so far.
func (e *Engine) Steps() int { return e.steps }

// Tape exposes the engine's tape for rendering. Writing to it bypasses the engine.
func (e *Engine) Tape() *tape.Tape { return e.tape }

// Table is the transition table the engine consults.
func (e *Engine) Table() domain.Table { return e.table }

// Halting is the halting-state set.
func (e *Engine) Halting() domain.StateSet { return e.halting }

// Name is the program name the engine was labelled with.
func (e *Engine) Name() string { return e.name }
