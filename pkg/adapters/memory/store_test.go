package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunProgramStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Seeded(t *testing.T) {
	store := memory.NewStore(&domain.Program{Name: "seed", Initial: "A", Blank: "0", Table: domain.NewTable()})

	p, err := store.Load(context.Background(), "seed")
	require.NoError(t, err)
	assert.Equal(t, domain.StateID("A"), p.Initial)
}

func TestMemoryStore_Concurrency(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, &domain.Program{Name: "shared", Initial: "A", Blank: "0", Table: domain.NewTable()})
			_, _ = store.Load(ctx, "shared")
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, names)
}
