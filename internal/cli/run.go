package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/tape"
)

// runSlice bounds how many steps run between cancellation checks.
const runSlice = 10_000

// Exit codes for the run command.
const (
	ExitHalted    = 0
	ExitError     = 1
	ExitUndefined = 2
	ExitBudget    = 3
)

// RunOptions configures RunProgram.
type RunOptions struct {
	MaxSteps  int
	Trace     bool
	HalfWidth int // 0 sizes the window to the terminal
	Quiet     bool
	ChunkSize int
	Events    io.Writer // NDJSON event log, one record per step, growth and outcome
}

// RunProgram loads the program at path and runs it, optionally printing a trace frame per step.
func RunProgram(ctx context.Context, w io.Writer, path string, opts RunOptions, logger *slog.Logger) (domain.Outcome, error) {
	machineOpts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithChunkSize(opts.ChunkSize),
	}
	if opts.Events != nil {
		events := slog.New(slog.NewJSONHandler(opts.Events, &slog.HandlerOptions{Level: slog.LevelDebug}))
		machineOpts = append(machineOpts, turing.WithLifecycleHooks(observability.LogHooks(events)))
	}

	m, err := turing.Load(path, machineOpts...)
	if err != nil {
		return domain.Outcome{}, err
	}

	var onStep turing.StepFunc
	var trace *tui.Trace
	if opts.Trace {
		var traceOpts []tui.TraceOption
		if opts.HalfWidth > 0 {
			traceOpts = append(traceOpts, tui.WithHalfWidth(opts.HalfWidth))
		}
		trace = tui.NewTrace(w, traceOpts...)
		if err := trace.Print(0, m.State(), m.Head(), m.Tape()); err != nil {
			return domain.Outcome{}, err
		}
		onStep = func(head int, t *tape.Tape) {
			_ = trace.Print(m.Steps(), m.State(), head, t)
		}
	}

	out, err := runInterruptible(ctx, m, opts.MaxSteps, onStep)
	if err != nil {
		if ctx.Err() != nil && !opts.Quiet {
			printSystemMessage(w, "Interrupted at state '%s' after %d steps.", m.State(), m.Steps())
		}
		return out, err
	}

	if opts.Quiet {
		return out, nil
	}
	if trace != nil {
		if err := trace.Outcome(out); err != nil {
			return out, err
		}
	} else {
		printSystemMessage(w, "%s after %d steps in state '%s'.", out, out.Steps, m.State())
	}
	lo, hi := m.Tape().Span()
	printSystemMessage(w, "Tape [%d..%d]: %s", lo, hi, summarize(m.Tape()))
	return out, nil
}

// runInterruptible runs in slices so a cancelled context stops long runs.
// Reaching the full budget still reports BudgetExceeded once per slice to hooks.
func runInterruptible(ctx context.Context, m *turing.Machine, maxSteps int, onStep turing.StepFunc) (domain.Outcome, error) {
	if maxSteps < 0 {
		return m.Run(maxSteps, onStep)
	}
	remaining := maxSteps
	for {
		n := min(remaining, runSlice)
		out, err := m.Run(n, onStep)
		if err != nil || out.Kind != domain.OutcomeBudgetExceeded {
			return out, err
		}
		remaining -= n
		if remaining == 0 {
			return out, nil
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
	}
}

// summarize counts the non-blank symbols on the tape.
func summarize(t *tape.Tape) string {
	counts := map[domain.Symbol]int{}
	var order []domain.Symbol
	for _, s := range t.Cells() {
		if s == t.Blank() {
			continue
		}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	if len(order) == 0 {
		return "blank"
	}
	out := ""
	for i, s := range order {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d x '%s'", counts[s], s)
	}
	return out
}

// ExitCode maps an outcome to the process exit status.
func ExitCode(out domain.Outcome) int {
	switch out.Kind {
	case domain.OutcomeHalted:
		return ExitHalted
	case domain.OutcomeUndefined:
		return ExitUndefined
	case domain.OutcomeBudgetExceeded:
		return ExitBudget
	default:
		return ExitError
	}
}
