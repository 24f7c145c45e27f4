package registry_test

import (
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("z", registry.Zeno)
	r.Register("a", registry.BusyBeaver2)

	assert.Equal(t, []string{"a", "z"}, r.Names())

	p, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name, "registered name wins over the factory's")

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)

	progs := r.Programs()
	require.Len(t, progs, 2)
	assert.Equal(t, "z", progs[1].Name)
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		kind  domain.OutcomeKind
		sym   domain.Symbol
		count int
	}{
		{"bb2", 6, domain.OutcomeHalted, "1", 4},
		{"bb4", 107, domain.OutcomeHalted, "1", 13},
		{"turing-first", 400, domain.OutcomeBudgetExceeded, "0", 100},
		{"zeno", 1000, domain.OutcomeBudgetExceeded, "1", 0},
	}

	builtins := registry.Builtins()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := builtins.Get(tt.name)
			require.NoError(t, err)

			e, err := runtime.NewFromProgram(p)
			require.NoError(t, err)
			out, err := e.Run(tt.steps, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.steps, out.Steps)
			assert.Equal(t, tt.count, e.Tape().Count(tt.sym))
		})
	}
}

func TestBuiltins_FreshCopies(t *testing.T) {
	builtins := registry.Builtins()
	a, err := builtins.Get("bb2")
	require.NoError(t, err)
	a.Table.Define("A", "0", domain.Transition{Next: "Z"})

	b, err := builtins.Get("bb2")
	require.NoError(t, err)
	tr, _ := b.Table.Lookup("A", "0")
	assert.Equal(t, domain.StateID("B"), tr.Next)
}
