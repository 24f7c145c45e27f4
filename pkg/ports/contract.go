package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProgramStoreContract runs a suite of tests to verify that a ProgramStore
// implementation adheres to the defined interface contract.
func RunProgramStoreContract(t *testing.T, store ProgramStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	newProgram := func(name string) *domain.Program {
		table := domain.NewTable()
		table.Define("A", "0", domain.Transition{Next: "B", Write: "1", Move: domain.Right})
		table.Define("A", "1", domain.Transition{Next: "B", Write: "1", Move: domain.Left})
		table.Define("B", "0", domain.Transition{Next: "A", Write: "1", Move: domain.Left})
		table.Define("B", "1", domain.Transition{Next: "H", Write: "1", Move: domain.Right})
		return &domain.Program{
			Name:        name,
			Description: "contract fixture",
			Initial:     "A",
			Blank:       "0",
			Halting:     domain.NewStateSet("H"),
			Alphabet:    []domain.Symbol{"0", "1"},
			TapeLength:  16,
			Table:       table,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		program := newProgram(name)
		require.NoError(t, store.Save(ctx, program), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, program.Name, loaded.Name)
		assert.Equal(t, program.Description, loaded.Description)
		assert.Equal(t, program.Initial, loaded.Initial)
		assert.Equal(t, program.Blank, loaded.Blank)
		assert.Equal(t, program.TapeLength, loaded.TapeLength)
		assert.Equal(t, program.Alphabet, loaded.Alphabet)
		assert.True(t, loaded.Halting.Contains("H"))
		assert.Equal(t, program.Table, loaded.Table)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		program := newProgram(name)
		program.Table.Define("B", "1", domain.Transition{Next: "A", Write: "0", Move: domain.None})
		require.NoError(t, store.Save(ctx, program))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		tr, ok := loaded.Table.Lookup("B", "1")
		require.True(t, ok)
		assert.Equal(t, domain.StateID("A"), tr.Next)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded.Table.Define("Z", "0", domain.Transition{Next: "Z"})

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		_, ok := again.Table.Lookup("Z", "0")
		assert.False(t, ok, "mutating a loaded program must not affect the store")
	})

	t.Run("List", func(t *testing.T) {
		other := fmt.Sprintf("%s-b", name)
		require.NoError(t, store.Save(ctx, newProgram(other)))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
		assert.Contains(t, names, other)
		assert.IsIncreasing(t, names)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, name)

		// Idempotent
		assert.NoError(t, store.Delete(ctx, name))
	})

	t.Run("Save Requires A Name", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, newProgram("")))
	})
}
