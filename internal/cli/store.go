package cli

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

// OpenStore resolves a --store value into a program store:
//
//	memory               in-process, seeded with the built-in programs, lost on exit
//	redis://host:port/0  Redis
//	sqlite://path.db     SQLite database file
//	anything else        directory of YAML files
//
// The returned function releases the store's resources.
func OpenStore(target string) (ports.ProgramStore, func() error, error) {
	switch {
	case target == "memory":
		return memory.NewStore(registry.Builtins().Programs()...), noop, nil
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		store, err := redis.NewFromURL(target)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case strings.HasPrefix(target, "sqlite://"):
		store, err := sqlite.Open(target)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return file.New(target), noop, nil
	}
}

// LockerFor returns a distributed locker sharing the store's backend, or nil
// when the store is local to this process.
func LockerFor(store ports.ProgramStore) ports.DistributedLocker {
	if rs, ok := store.(*redis.Store); ok {
		return redis.NewLocker(rs.Client(), "turing:")
	}
	return nil
}

// WithWriteLock serializes program writes across replicas when the store is
// shared, and returns local stores unchanged.
func WithWriteLock(store ports.ProgramStore) ports.ProgramStore {
	if locker := LockerFor(store); locker != nil {
		return middleware.NewLockingMiddleware(locker, middleware.DefaultLockTTL)(store)
	}
	return store
}
