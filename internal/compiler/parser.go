package compiler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// ErrMalformedLine is returned when a transition line does not have exactly five tokens.
var ErrMalformedLine = errors.New("malformed transition line")

// SyntaxError locates a construction error inside a multi-line source.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parser is responsible for converting transition text into table entries.
// The format is five whitespace-separated tokens:
//
//	current_state read_symbol next_state write_symbol direction
//
// where direction is one of L, R, N (any case).
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine decodes a single transition line.
func (p *Parser) ParseLine(line string) (domain.Key, domain.Transition, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return domain.Key{}, domain.Transition{}, fmt.Errorf("%w: expected 5 tokens, got %d", ErrMalformedLine, len(tokens))
	}
	if strings.HasPrefix(tokens[0], "#") {
		return domain.Key{}, domain.Transition{}, fmt.Errorf("%w: state %q starts with '#', which marks a comment", ErrMalformedLine, tokens[0])
	}

	dir, err := domain.ParseDirection(tokens[4])
	if err != nil {
		return domain.Key{}, domain.Transition{}, err
	}

	key := domain.Key{State: domain.StateID(tokens[0]), Read: domain.Symbol(tokens[1])}
	tr := domain.Transition{
		Next:  domain.StateID(tokens[2]),
		Write: domain.Symbol(tokens[3]),
		Move:  dir,
	}
	return key, tr, nil
}

// ParseInto reads transition lines from r and defines them on table.
// Blank lines and lines starting with '#' are skipped, so no state ID may start
// with '#' (domain.Program.Check enforces this). Later lines win over earlier
// ones for the same key. On error the table keeps the lines defined before it.
func (p *Parser) ParseInto(table domain.Table, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, tr, err := p.ParseLine(text)
		if err != nil {
			return &SyntaxError{Line: lineNo, Text: text, Err: err}
		}
		table[key] = tr
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read transitions: %w", err)
	}
	return nil
}

// Parse builds a new table from r.
func (p *Parser) Parse(r io.Reader) (domain.Table, error) {
	table := domain.NewTable()
	if err := p.ParseInto(table, r); err != nil {
		return nil, err
	}
	return table, nil
}

// ParseLines builds a new table from individual lines.
func (p *Parser) ParseLines(lines []string) (domain.Table, error) {
	return p.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

// FormatLine is the inverse of ParseLine.
func FormatLine(key domain.Key, tr domain.Transition) string {
	return fmt.Sprintf("%s %s %s %s %s", key.State, key.Read, tr.Next, tr.Write, tr.Move.Token())
}

// Format renders the whole table, one line per key, ordered by state then symbol.
func Format(table domain.Table) []string {
	keys := table.Keys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, FormatLine(k, table[k]))
	}
	return lines
}
