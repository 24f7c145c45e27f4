package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
)

// Extensions recognized as program documents, in lookup order.
var extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.ProgramStore using the local filesystem.
// It stores programs as YAML documents in a configured directory and also reads
// hand-written .yml and .json files placed there.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".turing/programs".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".turing", "programs")
	}
	return &Store{BasePath: basePath}
}

// LoadFile parses a single program document from disk.
// When the document has no name, the file name (without extension) is used.
func LoadFile(path string) (*domain.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}
	raw, err := dto.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if raw.Name == "" {
		base := filepath.Base(path)
		raw.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	program, err := raw.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: program name cannot be empty", domain.ErrInvalidProgram)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: program name %q is not a valid file name", domain.ErrInvalidProgram, name)
	}
	// Dot names are hidden from List and used for in-flight writes.
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: program name %q must not start with '.'", domain.ErrInvalidProgram, name)
	}
	return nil
}

// Save persists the program to a YAML file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, program *domain.Program) error {
	if err := checkName(program.Name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure program directory: %w", err)
	}

	data, err := dto.EncodeYAML(program)
	if err != nil {
		return fmt.Errorf("failed to marshal program: %w", err)
	}

	destPath := filepath.Join(s.BasePath, program.Name+".yaml")

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "."+program.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Drop hand-written variants so the new definition is the one Load finds.
	for _, ext := range extensions[1:] {
		_ = os.Remove(filepath.Join(s.BasePath, program.Name+ext))
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing program file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to program file: %w", err)
	}
	return nil
}

// Load retrieves the program from its file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Program, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		path := filepath.Join(s.BasePath, name+ext)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat program file: %w", err)
		}
		program, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		program.Name = name
		return program, nil
	}
	return nil, domain.ErrProgramNotFound
}

// Delete removes every file variant of the program.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete program file: %w", err)
		}
	}
	return nil
}

// List returns the names of all stored programs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, known := range extensions {
			if ext != known {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ext)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
