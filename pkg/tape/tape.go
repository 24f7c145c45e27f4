package tape

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

// DefaultChunkSize is the number of cells added on each growth event.
// Observable output (rendered windows) never depends on it, only on the blank symbol.
const DefaultChunkSize = 25

// ErrNegativeWidth is returned by Render when the half width is negative.
var ErrNegativeWidth = errors.New("half width must not be negative")

// Tape is a bidirectionally growable sequence of symbols.
// It is not safe for concurrent use.
type Tape struct {
	cells  []domain.Symbol
	origin int // physical index of logical position 0
	blank  domain.Symbol
	chunk  int
	onGrow func(*domain.GrowthEvent)
}

// Option configures a Tape.
type Option func(*Tape)

// WithChunkSize overrides the growth chunk. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(t *Tape) {
		if n > 0 {
			t.chunk = n
		}
	}
}

// WithGrowthHook registers a callback invoked after every growth event.
func WithGrowthHook(fn func(*domain.GrowthEvent)) Option {
	return func(t *Tape) {
		t.onGrow = fn
	}
}

// New creates a tape with length blank cells at logical positions [0, length).
func New(length int, blank domain.Symbol, opts ...Option) *Tape {
	if length < 0 {
		length = 0
	}
	t := &Tape{
		cells: make([]domain.Symbol, length),
		blank: blank,
		chunk: DefaultChunkSize,
	}
	for i := range t.cells {
		t.cells[i] = blank
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Read returns the symbol at logical position i, materializing blank cells if needed.
func (t *Tape) Read(i int) domain.Symbol {
	return t.cells[t.ensure(i)]
}

// Write stores sym at logical position i, materializing blank cells if needed.
func (t *Tape) Write(i int, sym domain.Symbol) {
	t.cells[t.ensure(i)] = sym
}

// ensure grows the tape until logical position i is materialized and returns its physical index.
func (t *Tape) ensure(i int) int {
	p := i + t.origin
	switch {
	case p < 0:
		n := t.chunksFor(-p)
		grown := make([]domain.Symbol, n+len(t.cells))
		for j := 0; j < n; j++ {
			grown[j] = t.blank
		}
		copy(grown[n:], t.cells)
		t.cells = grown
		t.origin += n
		t.notify(domain.SideFront, n)
		return i + t.origin
	case p >= len(t.cells):
		n := t.chunksFor(p - len(t.cells) + 1)
		for j := 0; j < n; j++ {
			t.cells = append(t.cells, t.blank)
		}
		t.notify(domain.SideBack, n)
	}
	return p
}

// chunksFor rounds a deficit up to a whole number of chunks.
func (t *Tape) chunksFor(deficit int) int {
	return ((deficit + t.chunk - 1) / t.chunk) * t.chunk
}

func (t *Tape) notify(side domain.Side, cells int) {
	if t.onGrow == nil {
		return
	}
	t.onGrow(&domain.GrowthEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTapeGrow},
		Side:      side,
		Cells:     cells,
		Len:       len(t.cells),
	})
}

// Render returns the 2*halfWidth+1 cells centered on center.
// Blank cells render as a space; rendering materializes the window like Read does.
func (t *Tape) Render(center, halfWidth int) (string, error) {
	if halfWidth < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeWidth, halfWidth)
	}
	var sb strings.Builder
	for i := center - halfWidth; i <= center+halfWidth; i++ {
		sym := t.Read(i)
		if sym == t.blank {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(string(sym))
	}
	return sb.String(), nil
}

// Len is the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Span returns the lowest and highest materialized logical positions.
// For an empty tape hi is lo-1.
func (t *Tape) Span() (lo, hi int) {
	return -t.origin, len(t.cells) - t.origin - 1
}

// Blank is the fill symbol for new cells.
func (t *Tape) Blank() domain.Symbol {
	return t.blank
}

// ChunkSize is the growth unit.
func (t *Tape) ChunkSize() int {
	return t.chunk
}

// Count returns how many materialized cells hold sym.
func (t *Tape) Count(sym domain.Symbol) int {
	n := 0
	for _, s := range t.cells {
		if s == sym {
			n++
		}
	}
	return n
}

// Cells returns a copy of the materialized cells, lowest position first.
func (t *Tape) Cells() []domain.Symbol {
	out := make([]domain.Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

// String renders every materialized cell, blanks as spaces.
func (t *Tape) String() string {
	var sb strings.Builder
	for _, s := range t.cells {
		if s == t.blank {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(string(s))
	}
	return sb.String()
}
