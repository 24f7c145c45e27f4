package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Program is a named, storable machine definition.
// It is the construction input of an engine; it never carries run-time state.
type Program struct {
	Name        string
	Description string
	Initial     StateID
	Blank       Symbol
	Halting     StateSet
	// Alphabet is optional; when empty it is inferred from the table and the blank.
	Alphabet   []Symbol
	TapeLength int
	Table      Table
}

// Check reports structural problems that make the program impossible to construct
// or to store as transition lines: every state and symbol must be a single
// non-empty token, and state IDs must not start with '#'.
// It does not judge totality; that is Validate's job.
func (p *Program) Check() error {
	if p == nil {
		return fmt.Errorf("%w: nil program", ErrInvalidProgram)
	}
	if p.Initial == "" {
		return fmt.Errorf("%w: initial state is required", ErrInvalidProgram)
	}
	if p.Blank == "" {
		return fmt.Errorf("%w: blank symbol is required", ErrInvalidProgram)
	}
	if p.TapeLength < 0 {
		return fmt.Errorf("%w: tape length must not be negative (got %d)", ErrInvalidProgram, p.TapeLength)
	}

	if err := checkState(p.Initial); err != nil {
		return fmt.Errorf("%w: initial state: %v", ErrInvalidProgram, err)
	}
	if err := checkToken(string(p.Blank)); err != nil {
		return fmt.Errorf("%w: blank symbol: %v", ErrInvalidProgram, err)
	}
	for _, h := range p.Halting.Sorted() {
		if err := checkState(h); err != nil {
			return fmt.Errorf("%w: halting state: %v", ErrInvalidProgram, err)
		}
	}
	for _, s := range p.Alphabet {
		if err := checkToken(string(s)); err != nil {
			return fmt.Errorf("%w: alphabet: %v", ErrInvalidProgram, err)
		}
	}
	for _, k := range p.Table.Keys() {
		tr := p.Table[k]
		for _, err := range []error{
			checkState(k.State),
			checkToken(string(k.Read)),
			checkState(tr.Next),
			checkToken(string(tr.Write)),
		} {
			if err != nil {
				return fmt.Errorf("%w: transition (%s, %s): %v", ErrInvalidProgram, k.State, k.Read, err)
			}
		}
	}
	return nil
}

func checkToken(tok string) error {
	if tok == "" {
		return fmt.Errorf("empty token")
	}
	if strings.IndexFunc(tok, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%q contains whitespace", tok)
	}
	return nil
}

// checkState rejects '#' prefixes, which the line format reserves for comments.
func checkState(id StateID) error {
	if err := checkToken(string(id)); err != nil {
		return err
	}
	if strings.HasPrefix(string(id), "#") {
		return fmt.Errorf("state %q starts with '#'", id)
	}
	return nil
}

// Symbols returns the declared alphabet, or the alphabet inferred from the blank and
// every symbol read or written by the table.
func (p *Program) Symbols() []Symbol {
	if len(p.Alphabet) > 0 {
		return p.Alphabet
	}
	seen := map[Symbol]bool{p.Blank: true}
	out := []Symbol{p.Blank}
	for _, k := range p.Table.Keys() {
		for _, s := range []Symbol{k.Read, p.Table[k].Write} {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// ViolationKind classifies a validation finding.
type ViolationKind string

const (
	ViolationUnknownSymbol     ViolationKind = "unknown_symbol"
	ViolationMissingTransition ViolationKind = "missing_transition"
	ViolationUnreachableHalt   ViolationKind = "unreachable_halt"
)

// Violation is one advisory finding of table validation.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	State   StateID       `json:"state,omitempty"`
	Symbol  Symbol        `json:"symbol,omitempty"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	return v.Message
}
