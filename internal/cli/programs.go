package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

// PushProgram loads the file at path and saves it to store. A non-empty name
// overrides the program's own name.
func PushProgram(ctx context.Context, store ports.ProgramStore, path, name string) (string, error) {
	p, err := file.LoadFile(path)
	if err != nil {
		return "", err
	}
	if name != "" {
		p.Name = name
	}
	if err := store.Save(ctx, p); err != nil {
		return "", fmt.Errorf("failed to save program %q: %w", p.Name, err)
	}
	return p.Name, nil
}

// ListPrograms prints one stored program name per line.
func ListPrograms(ctx context.Context, w io.Writer, store ports.ProgramStore) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

// ShowProgram prints a stored program as YAML.
func ShowProgram(ctx context.Context, w io.Writer, store ports.ProgramStore, name string) error {
	p, err := store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load program %q: %w", name, err)
	}
	data, err := dto.EncodeYAML(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// RemoveProgram deletes a stored program.
func RemoveProgram(ctx context.Context, store ports.ProgramStore, name string) error {
	return store.Delete(ctx, name)
}

// SeedPrograms saves the built-in programs to store and returns their names.
func SeedPrograms(ctx context.Context, store ports.ProgramStore) ([]string, error) {
	builtins := registry.Builtins()
	for _, p := range builtins.Programs() {
		if err := store.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to save program %q: %w", p.Name, err)
		}
	}
	return builtins.Names(), nil
}
