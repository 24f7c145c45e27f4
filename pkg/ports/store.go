package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// ProgramStore defines the interface for persisting machine definitions.
// Stores never hold run-time machine state (tape, head, current state).
type ProgramStore interface {
	// Save persists the program under its Name, replacing any previous definition.
	Save(ctx context.Context, program *domain.Program) error

	// Load retrieves the program with the given name.
	// Returns domain.ErrProgramNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Program, error)

	// Delete removes the program. Deleting a missing program is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored program names in lexical order.
	List(ctx context.Context) ([]string, error)
}
