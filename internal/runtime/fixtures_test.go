package runtime_test

import (
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Well-known machines used across the runtime tests.
var (
	busyBeaver2 = []string{
		"A 1 B 1 L",
		"A 0 B 1 R",
		"B 0 A 1 L",
		"B 1 H 1 R",
	}

	busyBeaver4 = []string{
		"A 0 B 1 R",
		"A 1 B 1 L",
		"B 0 A 1 L",
		"B 1 C 0 L",
		"C 1 D 1 L",
		"C 0 H 1 R",
		"D 1 A 0 R",
		"D 0 D 1 R",
	}

	// Turing's first example: prints 0 . 1 . 0 . 1 ... forever.
	turingFirst = []string{
		"b . c 0 R",
		"c . e . R",
		"e . f 1 R",
		"f . b . R",
	}

	// Toggles the cell under the head forever without moving.
	zeno = []string{
		"q0 0 q0 1 N",
		"q0 1 q0 0 N",
	}

	// Walks right forever over blank cells.
	rightRunner = []string{
		"A 0 B 1 R",
		"B 0 A 1 R",
	}
)

func mustTable(t *testing.T, lines []string) domain.Table {
	t.Helper()
	table, err := compiler.NewParser().ParseLines(lines)
	require.NoError(t, err)
	return table
}

func mustProgram(t *testing.T, name string, initial domain.StateID, blank domain.Symbol, lines []string, halting ...domain.StateID) *domain.Program {
	t.Helper()
	return &domain.Program{
		Name:       name,
		Initial:    initial,
		Blank:      blank,
		Halting:    domain.NewStateSet(halting...),
		TapeLength: domain.DefaultTapeLength,
		Table:      mustTable(t, lines),
	}
}
