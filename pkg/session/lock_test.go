package session

import (
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		id := mgr.newID()
		_, _ = mgr.Get(ctx, id)
		_ = mgr.Delete(ctx, id)
	}

	lockCount := len(mgr.locks)
	t.Logf("Lookups: %d, Locks Leaked: %d", count, lockCount)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
