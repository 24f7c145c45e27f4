package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func program(name string) *domain.Program {
	table := domain.Table{}
	table.Define("A", "0", domain.Transition{Next: "H", Write: "1", Move: domain.Right})
	return &domain.Program{
		Name:       name,
		Initial:    "A",
		Blank:      "0",
		Halting:    domain.NewStateSet("H"),
		TapeLength: 4,
		Table:      table,
	}
}

func TestChain_Contract(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	)
	ports.RunProgramStoreContract(t, store)
	assert.Contains(t, buf.String(), "op=save")
}

func TestValidationMiddleware(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	store := middleware.NewValidationMiddleware()(inner)

	bad := program("bad")
	bad.Initial = ""
	err := store.Save(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	_, err = inner.Load(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound, "rejected program never reaches the store")

	err = store.Save(ctx, program(""))
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	// Written around the middleware.
	require.NoError(t, inner.Save(ctx, bad))
	_, err = store.Load(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)
}

func TestLoggingMiddleware(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore())

	require.NoError(t, store.Save(ctx, program("bb")))
	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	assert.Empty(t, buf.String(), "not-found is not a warning")

	p, err := store.Load(ctx, "bb")
	require.NoError(t, err)
	assert.Equal(t, "bb", p.Name)
}
