// Package sqlite implements ports.ProgramStore on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps program documents in a single SQLite table.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
// It accepts either a plain path or a sqlite:// URL.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func Open(path string) (*Store, error) {
	path = strings.TrimPrefix(path, "sqlite://")
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts the program document.
func (s *Store) Save(ctx context.Context, program *domain.Program) error {
	if program.Name == "" {
		return fmt.Errorf("%w: program name is required", domain.ErrInvalidProgram)
	}

	data, err := dto.EncodeJSON(program)
	if err != nil {
		return fmt.Errorf("failed to marshal program: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO programs (name, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`, program.Name, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save program %q: %w", program.Name, err)
	}
	return nil
}

// Load reads a program by name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Program, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM programs WHERE name = ?`, name).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load program %q: %w", name, err)
	}

	return dto.Parse([]byte(document))
}

// Delete removes a program. Missing names are not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete program %q: %w", name, err)
	}
	return nil
}

// List returns program names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
