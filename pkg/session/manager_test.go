package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const busyBeaver2 = `
name: bb2
initial: A
blank: "0"
halting: [H]
tape_length: 10
transitions:
  - A 0 B 1 R
  - A 1 B 1 L
  - B 0 A 1 L
  - B 1 H 1 R
`

const zeno = `
name: zeno
initial: A
blank: "0"
transitions:
  - A 0 B 1 N
  - B 1 A 0 N
`

func newManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	store := memory.NewStore()
	for _, doc := range []string{busyBeaver2, zeno} {
		p, err := dto.Parse([]byte(doc))
		require.NoError(t, err)
		require.NoError(t, store.Save(context.Background(), p))
	}
	return session.NewManager(store, opts...)
}

func TestManager_CreateAndRun(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, "bb2")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "bb2", snap.Program)
	assert.Equal(t, domain.StateID("A"), snap.State)
	assert.Equal(t, domain.ModeRunning, snap.Mode)
	assert.Nil(t, snap.Last)
	assert.Len(t, snap.Tape, 2*session.DefaultWindow+1)

	snap, err = m.Run(ctx, snap.ID, 100)
	require.NoError(t, err)
	require.NotNil(t, snap.Last)
	assert.Equal(t, domain.OutcomeHalted, snap.Last.Kind)
	assert.Equal(t, 6, snap.Steps)
	assert.Equal(t, domain.ModeHalted, snap.Mode)
}

func TestManager_Step(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, "bb2")
	require.NoError(t, err)

	snap, err = m.Step(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAdvanced, snap.Last.Kind)
	assert.Equal(t, domain.StateID("B"), snap.State)
	assert.Equal(t, 1, snap.Steps)

	got, err := m.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestManager_StepAfterHalt(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, "bb2")
	require.NoError(t, err)
	_, err = m.Run(ctx, snap.ID, 100)
	require.NoError(t, err)

	_, err = m.Step(ctx, snap.ID)
	assert.Error(t, err)
}

func TestManager_RunBudget(t *testing.T) {
	m := newManager(t, session.WithStepLimit(50))
	ctx := context.Background()

	snap, err := m.Create(ctx, "zeno")
	require.NoError(t, err)

	t.Run("Within limit", func(t *testing.T) {
		snap, err := m.Run(ctx, snap.ID, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeBudgetExceeded, snap.Last.Kind)
		assert.Equal(t, 10, snap.Steps)
	})

	t.Run("Clamped", func(t *testing.T) {
		snap, err := m.Run(ctx, snap.ID, 1000)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeBudgetExceeded, snap.Last.Kind)
		assert.Equal(t, 60, snap.Steps)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := m.Run(cctx, snap.ID, 10)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestManager_NotFound(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)

	_, err = m.Step(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = m.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.NoError(t, m.Delete(ctx, "nope"))
}

func TestManager_ListAndDelete(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	a, err := m.Create(ctx, "bb2")
	require.NoError(t, err)
	b, err := m.Create(ctx, "zeno")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	assert.IsIncreasing(t, ids)

	require.NoError(t, m.Delete(ctx, a.ID))
	ids, err = m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids)
}

func TestManager_ConcurrentSteps(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, "zeno")
	require.NoError(t, err)

	var wg sync.WaitGroup
	workers := 50
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Step(ctx, snap.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.Steps, "every step must be applied exactly once")
}

func TestManager_HaltedOnEntry(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, "bb2")
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		snap, err = m.Step(ctx, snap.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.OutcomeAdvanced, snap.Last.Kind)
	assert.Equal(t, domain.StateID("H"), snap.State)
	assert.Equal(t, domain.ModeHalted, snap.Mode)

	snap, err = m.Step(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeHalted, snap.Last.Kind)
	assert.Equal(t, 6, snap.Steps)
}

func TestManager_CreateWhileStepping(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				ids, _ := m.List(ctx)
				for _, id := range ids {
					// zeno never terminates, so every step is accepted.
					_, err := m.Step(ctx, id)
					assert.NoError(t, err)
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		snap, err := m.Create(ctx, "zeno")
		require.NoError(t, err)
		assert.Zero(t, snap.Steps)
		assert.Len(t, snap.Tape, 2*session.DefaultWindow+1)
	}
	close(done)
	wg.Wait()

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 20)
}
