package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed writer can hold a program lock.
const DefaultLockTTL = 10 * time.Second

type lockingMiddleware struct {
	next   ports.ProgramStore
	locker ports.DistributedLocker
	ttl    time.Duration
}

// NewLockingMiddleware serializes writers of the same program name through locker.
// Save and Delete touch several keys without a transaction, so two replicas
// writing one name could otherwise leave the index and the documents out of step.
// Reads are not locked. A non-positive ttl uses DefaultLockTTL.
func NewLockingMiddleware(locker ports.DistributedLocker, ttl time.Duration) Middleware {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return func(next ports.ProgramStore) ports.ProgramStore {
		return &lockingMiddleware{next: next, locker: locker, ttl: ttl}
	}
}

func (m *lockingMiddleware) Save(ctx context.Context, program *domain.Program) error {
	if program == nil {
		return m.next.Save(ctx, program)
	}
	return m.withLock(ctx, program.Name, func() error {
		return m.next.Save(ctx, program)
	})
}

func (m *lockingMiddleware) Load(ctx context.Context, name string) (*domain.Program, error) {
	return m.next.Load(ctx, name)
}

func (m *lockingMiddleware) Delete(ctx context.Context, name string) error {
	return m.withLock(ctx, name, func() error {
		return m.next.Delete(ctx, name)
	})
}

func (m *lockingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *lockingMiddleware) withLock(ctx context.Context, name string, fn func() error) (err error) {
	unlock, err := m.locker.Lock(ctx, "program:"+name, m.ttl)
	if err != nil {
		return fmt.Errorf("failed to lock program %q: %w", name, err)
	}
	defer func() {
		// Release even if ctx was cancelled while fn ran.
		if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil && err == nil {
			err = fmt.Errorf("failed to unlock program %q: %w", name, uerr)
		}
	}()
	return fn()
}
