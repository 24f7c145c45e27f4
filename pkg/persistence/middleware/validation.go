package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type validationMiddleware struct {
	ports.ProgramStore
}

// NewValidationMiddleware rejects programs that cannot be constructed before they
// reach the store. Stored programs are checked again on Load.
func NewValidationMiddleware() Middleware {
	return func(next ports.ProgramStore) ports.ProgramStore {
		return &validationMiddleware{ProgramStore: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, program *domain.Program) error {
	if program == nil || program.Name == "" {
		return fmt.Errorf("%w: program name is required", domain.ErrInvalidProgram)
	}
	if err := program.Check(); err != nil {
		return err
	}
	return m.ProgramStore.Save(ctx, program)
}

func (m *validationMiddleware) Load(ctx context.Context, name string) (*domain.Program, error) {
	p, err := m.ProgramStore.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("stored program %q: %w", name, err)
	}
	return p, nil
}
