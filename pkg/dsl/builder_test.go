package dsl_test

import (
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BusyBeaver(t *testing.T) {
	b := dsl.New("bb2").Describe("two-state busy beaver").TapeLength(10)

	b.State("A").
		On("0", "1", domain.Right, "B").
		On("1", "1", domain.Left, "B")
	b.State("B").
		On("0", "1", domain.Left, "A").
		On("1", "1", domain.Right, "H")
	b.State("H").Halt()

	p, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.StateID("A"), p.Initial, "first state added is the initial state")
	assert.Equal(t, domain.DefaultBlank, p.Blank)
	assert.True(t, p.Halting.Contains("H"))
	assert.Len(t, p.Table, 4)

	e, err := runtime.NewFromProgram(p)
	require.NoError(t, err)
	out, err := e.Run(100, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeHalted, out.Kind)
	assert.Equal(t, 6, out.Steps)
}

func TestBuilder_Defaults(t *testing.T) {
	p, err := dsl.New("empty").Initial("q0").Build()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTapeLength, p.TapeLength)
	assert.Empty(t, p.Table)

	p, err = dsl.New("empty-tape").Initial("q0").TapeLength(0).Build()
	require.NoError(t, err)
	assert.Equal(t, 0, p.TapeLength, "an explicit zero length is kept")
}

func TestBuilder_LastDefinitionWins(t *testing.T) {
	b := dsl.New("overwrite")
	b.State("A").
		On("0", "1", domain.Right, "B").
		On("0", "x", domain.Left, "C")

	p := b.MustBuild()
	tr, ok := p.Table.Lookup("A", "0")
	require.True(t, ok)
	assert.Equal(t, domain.Transition{Next: "C", Write: "x", Move: domain.Left}, tr)
}

func TestBuilder_BuildIsolation(t *testing.T) {
	b := dsl.New("iso")
	b.State("A").On("0", "1", domain.None, "A")
	first := b.MustBuild()

	b.State("A").On("1", "0", domain.None, "A").Done().Blank("_")
	second := b.MustBuild()

	assert.Len(t, first.Table, 1, "later edits do not leak into earlier builds")
	assert.Equal(t, domain.DefaultBlank, first.Blank)
	assert.Len(t, second.Table, 2)
	assert.Equal(t, domain.Symbol("_"), second.Blank)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := dsl.New("no-states").Build()
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	_, err = dsl.New("negative").Initial("A").TapeLength(-1).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	assert.Panics(t, func() { dsl.New("no-states").MustBuild() })

	b := dsl.New("spaced")
	b.State("A").On("a b", "1", domain.Right, "H")
	_, err = b.Build()
	assert.ErrorIs(t, err, domain.ErrInvalidProgram, "symbols must be single tokens")
}
