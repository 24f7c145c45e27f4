package runtime_test

import (
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	binary := []domain.Symbol{"0", "1"}

	t.Run("Busy Beaver Is Clean", func(t *testing.T) {
		violations := runtime.Validate(mustTable(t, busyBeaver4), domain.NewStateSet("H"), binary)
		assert.Empty(t, violations)
	})

	t.Run("Unknown Symbols", func(t *testing.T) {
		table := mustTable(t, []string{"A 0 H x R", "A 1 H 1 R", "A y H 1 R"})
		violations := runtime.Validate(table, domain.NewStateSet("H"), binary)

		require.Len(t, violations, 2)
		assert.Equal(t, domain.ViolationUnknownSymbol, violations[0].Kind)
		assert.Equal(t, domain.Symbol("x"), violations[0].Symbol)
		assert.Equal(t, domain.ViolationUnknownSymbol, violations[1].Kind)
		assert.Equal(t, domain.Symbol("y"), violations[1].Symbol)
	})

	t.Run("Missing Transitions", func(t *testing.T) {
		table := mustTable(t, []string{"A 0 B 1 R", "B 0 H 1 R", "B 1 A 0 L"})
		violations := runtime.Validate(table, domain.NewStateSet("H"), binary)

		require.Len(t, violations, 1)
		assert.Equal(t, domain.ViolationMissingTransition, violations[0].Kind)
		assert.Equal(t, domain.StateID("A"), violations[0].State)
		assert.Equal(t, domain.Symbol("1"), violations[0].Symbol)
	})

	t.Run("No Halting Transition", func(t *testing.T) {
		violations := runtime.Validate(mustTable(t, zeno), domain.NewStateSet("H"), binary)

		require.Len(t, violations, 1)
		assert.Equal(t, domain.ViolationUnreachableHalt, violations[0].Kind)
	})

	t.Run("Does Not Affect Execution", func(t *testing.T) {
		// A partial table still runs; validation is advisory only.
		table := mustTable(t, []string{"A 0 B 1 R"})
		eng := runtime.NewEngine("A", tape.New(10, "0"), table, domain.NewStateSet("H"))
		assert.NotEmpty(t, eng.Validate(binary))

		out, err := eng.Step()
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAdvanced, out.Kind)
	})
}
