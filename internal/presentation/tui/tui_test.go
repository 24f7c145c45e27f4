package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func busyBeaver2(t *testing.T) *domain.Program {
	t.Helper()
	table, err := compiler.NewParser().ParseLines([]string{
		"A 0 B 1 R",
		"A 1 B 1 L",
		"B 0 A 1 L",
		"B 1 H 1 R",
	})
	require.NoError(t, err)
	return &domain.Program{
		Name:        "bb2",
		Description: "Two-state busy beaver.",
		Initial:     "A",
		Blank:       "0",
		Halting:     domain.NewStateSet("H"),
		TapeLength:  10,
		Table:       table,
	}
}

func TestTrace_Golden(t *testing.T) {
	eng, err := runtime.NewFromProgram(busyBeaver2(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	trace := tui.NewTrace(&buf, tui.WithHalfWidth(3), tui.WithColorProfile(termenv.Ascii))

	require.NoError(t, trace.Print(0, eng.State(), eng.Head(), eng.Tape()))
	step := 0
	out, err := eng.Run(100, func(head int, tp *tape.Tape) {
		step++
		require.NoError(t, trace.Print(step, eng.State(), head, tp))
	})
	require.NoError(t, err)
	require.NoError(t, trace.Outcome(out))

	newGoldie(t).Assert(t, "bb2_trace", buf.Bytes())
}

func TestTrace_ColorHighlightsHead(t *testing.T) {
	tp := tape.New(3, "0")
	tp.Write(1, "1")

	var buf bytes.Buffer
	trace := tui.NewTrace(&buf, tui.WithHalfWidth(1), tui.WithColorProfile(termenv.TrueColor))
	frame := trace.Frame(0, "A", 1, tp)

	assert.Contains(t, frame, "\x1b[", "head cell carries escape codes")
	assert.NotContains(t, frame, "[1]")
	assert.True(t, strings.HasSuffix(frame, "|"))
}

func TestTrace_FrameGrowsTape(t *testing.T) {
	tp := tape.New(2, "0", tape.WithChunkSize(1))
	trace := tui.NewTrace(&bytes.Buffer{}, tui.WithHalfWidth(2), tui.WithColorProfile(termenv.Ascii))

	frame := trace.Frame(0, "A", 0, tp)
	assert.Equal(t, "    0  A   |      [ ]      |", frame)
	lo, hi := tp.Span()
	assert.Equal(t, -2, lo)
	assert.Equal(t, 2, hi)
}

func TestTrace_OutcomeDetail(t *testing.T) {
	var buf bytes.Buffer
	trace := tui.NewTrace(&buf, tui.WithColorProfile(termenv.Ascii))
	require.NoError(t, trace.Outcome(domain.Outcome{
		Kind:   domain.OutcomeUndefined,
		Detail: "the transition for state 'B' when '0' is read is never defined",
		Steps:  2,
	}))
	assert.Equal(t, "undefined after 2 steps: the transition for state 'B' when '0' is read is never defined\n", buf.String())
}

func TestFitHalfWidth(t *testing.T) {
	assert.Equal(t, tui.DefaultHalfWidth, tui.FitHalfWidth(0))
	assert.Equal(t, 11, tui.FitHalfWidth(80))
	assert.Equal(t, 1, tui.FitHalfWidth(16))
}

func TestNewTrace_NonTerminalDefaults(t *testing.T) {
	trace := tui.NewTrace(&bytes.Buffer{})
	assert.Equal(t, tui.DefaultHalfWidth, trace.HalfWidth())
	assert.False(t, tui.IsTerminal(&bytes.Buffer{}))
	assert.Equal(t, 42, tui.Width(&bytes.Buffer{}, 42))
}

func TestDescribeMarkdown_Golden(t *testing.T) {
	newGoldie(t).Assert(t, "bb2_describe", []byte(tui.DescribeMarkdown(busyBeaver2(t))))
}

func TestValidationMarkdown_Golden(t *testing.T) {
	table, err := compiler.NewParser().ParseLines([]string{
		"A 0 A 1 R",
		"A x A 1 R",
	})
	require.NoError(t, err)
	violations := runtime.Validate(table, domain.NewStateSet("H"), []domain.Symbol{"0", "1"})

	newGoldie(t).Assert(t, "partial_validation", []byte(tui.ValidationMarkdown("partial", violations)))
}

func TestValidationMarkdown_Clean(t *testing.T) {
	md := tui.ValidationMarkdown("bb2", nil)
	assert.Contains(t, md, "No findings")
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render(tui.DescribeMarkdown(busyBeaver2(t)))
	require.NoError(t, err)
	assert.Contains(t, out, "bb2")
	assert.Contains(t, out, "Transitions")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
