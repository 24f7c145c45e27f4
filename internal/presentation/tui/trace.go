package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/muesli/termenv"
)

// DefaultHalfWidth is the number of cells shown on each side of the head.
const DefaultHalfWidth = 7

// frameOverhead is the width of the step and state columns plus the borders.
const frameOverhead = 14

// Trace prints one frame per step: a window of cells around the head, with
// the head cell highlighted (reverse video on color terminals, brackets otherwise).
type Trace struct {
	w         io.Writer
	profile   termenv.Profile
	halfWidth int
	headColor string
}

// TraceOption configures a Trace.
type TraceOption func(*Trace)

// WithColorProfile overrides terminal detection.
func WithColorProfile(p termenv.Profile) TraceOption {
	return func(t *Trace) {
		t.profile = p
	}
}

// WithHalfWidth sets the number of cells on each side of the head.
func WithHalfWidth(n int) TraceOption {
	return func(t *Trace) {
		if n >= 0 {
			t.halfWidth = n
		}
	}
}

// NewTrace creates a Trace writing to w. Without WithHalfWidth the window is
// sized to the terminal width.
func NewTrace(w io.Writer, opts ...TraceOption) *Trace {
	t := &Trace{
		w:         w,
		profile:   termenv.Ascii,
		halfWidth: -1,
		headColor: "#f472b6",
	}
	if IsTerminal(w) {
		t.profile = termenv.ColorProfile()
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.halfWidth < 0 {
		t.halfWidth = FitHalfWidth(Width(w, 0))
	}
	return t
}

// FitHalfWidth picks a half width that fits single-character cells in cols
// columns. Zero or unknown widths get DefaultHalfWidth.
func FitHalfWidth(cols int) int {
	if cols <= frameOverhead {
		return DefaultHalfWidth
	}
	n := (cols - frameOverhead) / 6
	if n < 1 {
		return 1
	}
	return n
}

// HalfWidth is the effective window half width.
func (t *Trace) HalfWidth() int {
	return t.halfWidth
}

// Frame renders one line for the machine at step in state with the head at head.
// Reading cells may grow the tape.
func (t *Trace) Frame(step int, state domain.StateID, head int, tp *tape.Tape) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5d  %-4s|", step, state)
	for i := head - t.halfWidth; i <= head+t.halfWidth; i++ {
		sym := string(tp.Read(i))
		if domain.Symbol(sym) == tp.Blank() {
			sym = strings.Repeat(" ", len(sym))
		}
		if i != head {
			b.WriteString(" " + sym + " ")
			continue
		}
		if t.profile == termenv.Ascii {
			b.WriteString("[" + sym + "]")
			continue
		}
		b.WriteString(termenv.String(" " + sym + " ").
			Reverse().
			Bold().
			Foreground(t.profile.Color(t.headColor)).
			String())
	}
	b.WriteString("|")
	return b.String()
}

// Print writes a frame followed by a newline.
func (t *Trace) Print(step int, state domain.StateID, head int, tp *tape.Tape) error {
	_, err := fmt.Fprintln(t.w, t.Frame(step, state, head, tp))
	return err
}

// Outcome writes a summary line for the final outcome.
func (t *Trace) Outcome(out domain.Outcome) error {
	label := termenv.String(string(out.Kind)).Bold()
	if t.profile == termenv.Ascii {
		label = termenv.String(string(out.Kind))
	} else if out.Kind == domain.OutcomeHalted {
		label = label.Foreground(t.profile.Color("#34d399"))
	} else {
		label = label.Foreground(t.profile.Color("#fb7185"))
	}

	line := fmt.Sprintf("%s after %d steps", label, out.Steps)
	if out.Detail != "" {
		line += ": " + out.Detail
	}
	_, err := fmt.Fprintln(t.w, line)
	return err
}
