package runtime

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// WithChunkSize sets the tape growth chunk used by NewFromProgram.
func WithChunkSize(n int) EngineOption {
	return func(e *Engine) {
		e.chunk = n
	}
}

// NewFromProgram builds a fresh tape and engine for p.
// The tape reports growth through the engine's OnTapeGrow hook.
// The program's table and halting set are copied so later edits to p do not leak into the run.
func NewFromProgram(p *domain.Program, opts ...EngineOption) (*Engine, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	// Resolve options that shape the tape before the engine exists.
	probe := &Engine{}
	for _, opt := range opts {
		opt(probe)
	}

	var eng *Engine
	t := tape.New(p.TapeLength, p.Blank,
		tape.WithChunkSize(probe.chunk),
		tape.WithGrowthHook(func(ev *domain.GrowthEvent) {
			if eng == nil || eng.hooks.OnTapeGrow == nil {
				return
			}
			ev.Machine = eng.name
			eng.hooks.OnTapeGrow(ev)
		}),
	)

	opts = append([]EngineOption{WithName(p.Name)}, opts...)
	eng = NewEngine(p.Initial, t, p.Table.Clone(), p.Halting.Clone(), opts...)
	if len(p.Table) == 0 {
		eng.logger.Warn("program has an empty transition table", "initial", p.Initial)
	}
	return eng, nil
}
