package turing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zenoYAML = `
name: zeno
description: Toggles one cell forever.
initial: A
blank: "0"
tape_length: 4
transitions:
  - A 0 B 1 N
  - B 1 A 0 N
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeno.yaml")
	require.NoError(t, os.WriteFile(path, []byte(zenoYAML), 0644))

	m, err := turing.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zeno", m.Name)

	out, err := m.Run(11, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBudgetExceeded, out.Kind)
	assert.Equal(t, domain.StateID("B"), m.State())
	assert.Equal(t, domain.ModeRunning, m.Mode())

	_, err = turing.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMachine_Reset(t *testing.T) {
	m, err := turing.NewFromLines("A", 4, "0", []string{"A 0 H 1 R"}, []domain.StateID{"H"})
	require.NoError(t, err)

	out, err := m.Run(10, nil)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeHalted, out.Kind)

	_, err = m.Step()
	assert.ErrorIs(t, err, turing.ErrTerminated)

	require.NoError(t, m.Reset())
	assert.Equal(t, domain.StateID("A"), m.State())
	assert.Equal(t, 0, m.Steps())
	assert.Equal(t, 0, m.Tape().Count("1"))
	assert.Equal(t, 2, m.Head())
}

func TestMachine_Options(t *testing.T) {
	var steps, grown int
	hooks := domain.LifecycleHooks{
		OnStep:     func(*domain.StepEvent) { steps++ },
		OnTapeGrow: func(e *domain.GrowthEvent) { grown += e.Cells },
	}

	m, err := turing.NewFromLines("A", 2, "0", []string{
		"A 0 A 1 R",
	}, nil, turing.WithLifecycleHooks(hooks), turing.WithChunkSize(3))
	require.NoError(t, err)

	out, err := m.Run(5, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBudgetExceeded, out.Kind)
	assert.Equal(t, 5, steps)
	assert.Equal(t, 3, m.Tape().ChunkSize())
	assert.Equal(t, 6, grown)
}

func TestMachine_Validate(t *testing.T) {
	m, err := turing.NewFromLines("A", 4, "0", []string{"A 0 A 1 R"}, nil)
	require.NoError(t, err)

	kinds := map[domain.ViolationKind]int{}
	for _, v := range m.Validate() {
		kinds[v.Kind]++
	}
	assert.Equal(t, 1, kinds[domain.ViolationMissingTransition], "(A, 1) is missing")
	assert.Equal(t, 1, kinds[domain.ViolationUnreachableHalt])

	assert.Len(t, m.ValidateAlphabet([]domain.Symbol{"0"}), 2, "write of 1 unknown, no halt")
}

func TestNew_Errors(t *testing.T) {
	_, err := turing.NewFromLines("A", 4, "0", []string{"A 0 B 1"}, nil)
	assert.Error(t, err)

	_, err = turing.NewFromLines("A", 4, "0", []string{"A 0 B 1 X"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = turing.NewFromLines("", 4, "0", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	m, err := turing.NewFromLines("A", 4, "0", nil, nil)
	require.NoError(t, err)
	_, err = m.Run(-1, nil)
	assert.ErrorIs(t, err, turing.ErrInvalidBudget)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, turing.Version)
}

func TestExamplePrograms(t *testing.T) {
	tests := []struct {
		file  string
		steps int
		kind  domain.OutcomeKind
		count map[domain.Symbol]int
	}{
		{"bb2.yaml", 6, domain.OutcomeHalted, map[domain.Symbol]int{"1": 4}},
		{"bb4.yaml", 107, domain.OutcomeHalted, map[domain.Symbol]int{"1": 13}},
		{"turing-first.yaml", 40, domain.OutcomeBudgetExceeded, map[domain.Symbol]int{"0": 10, "1": 10}},
		{"zeno.yaml", 1001, domain.OutcomeBudgetExceeded, map[domain.Symbol]int{"1": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			m, err := turing.Load(filepath.Join("examples", "programs", tt.file))
			require.NoError(t, err)

			budget := tt.steps
			if tt.kind == domain.OutcomeHalted {
				budget = 1000
			}
			out, err := m.Run(budget, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.steps, out.Steps)
			for sym, n := range tt.count {
				assert.Equal(t, n, m.Tape().Count(sym), "count of %q", sym)
			}
		})
	}
}
