package dto

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Program is the storable representation of a machine definition.
// It uses "mapstructure" tags so documents decoded into generic maps (YAML, JSON)
// share one decoding path. Transitions use the five-token text format.
type Program struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Initial     string   `json:"initial" yaml:"initial" mapstructure:"initial"`
	Blank       string   `json:"blank" yaml:"blank" mapstructure:"blank"`
	Halting     []string `json:"halting" yaml:"halting" mapstructure:"halting"`
	Alphabet    []string `json:"alphabet,omitempty" yaml:"alphabet,omitempty" mapstructure:"alphabet"`
	TapeLength  *int     `json:"tape_length,omitempty" yaml:"tape_length,omitempty" mapstructure:"tape_length"`
	Transitions []string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// Decode converts a generic document into a Program.
// Weak typing lets unquoted YAML scalars such as 0 or 1 act as symbols.
func Decode(raw map[string]any) (*Program, error) {
	var out Program
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	return &out, nil
}

// Unmarshal parses a YAML or JSON document (JSON is valid YAML).
func Unmarshal(data []byte) (*Program, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidProgram)
	}
	return Decode(raw)
}

// MarshalYAMLDocument renders the program as a YAML document.
func (p *Program) MarshalYAMLDocument() ([]byte, error) {
	return yaml.Marshal(p)
}

// MarshalJSONDocument renders the program as compact JSON.
func (p *Program) MarshalJSONDocument() ([]byte, error) {
	return json.Marshal(p)
}

// ToDomain compiles the transitions and applies defaults. An absent tape_length
// means DefaultTapeLength; an explicit 0 is kept.
func (p *Program) ToDomain() (*domain.Program, error) {
	table, err := compiler.NewParser().ParseLines(p.Transitions)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", p.Name, err)
	}

	out := &domain.Program{
		Name:        p.Name,
		Description: p.Description,
		Initial:     domain.StateID(p.Initial),
		Blank:       domain.Symbol(p.Blank),
		Halting:     domain.NewStateSet(),
		TapeLength:  domain.DefaultTapeLength,
		Table:       table,
	}
	if out.Blank == "" {
		out.Blank = domain.DefaultBlank
	}
	if p.TapeLength != nil {
		out.TapeLength = *p.TapeLength
	}
	for _, h := range p.Halting {
		out.Halting.Add(domain.StateID(h))
	}
	for _, s := range p.Alphabet {
		out.Alphabet = append(out.Alphabet, domain.Symbol(s))
	}

	if err := out.Check(); err != nil {
		return nil, fmt.Errorf("program %q: %w", p.Name, err)
	}
	return out, nil
}

// FromDomain converts a domain program into its storable form.
func FromDomain(p *domain.Program) *Program {
	tapeLength := p.TapeLength
	out := &Program{
		Name:        p.Name,
		Description: p.Description,
		Initial:     string(p.Initial),
		Blank:       string(p.Blank),
		Halting:     []string{},
		TapeLength:  &tapeLength,
		Transitions: compiler.Format(p.Table),
	}
	for _, h := range p.Halting.Sorted() {
		out.Halting = append(out.Halting, string(h))
	}
	for _, s := range p.Alphabet {
		out.Alphabet = append(out.Alphabet, string(s))
	}
	return out
}

// Parse is Unmarshal followed by ToDomain.
func Parse(data []byte) (*domain.Program, error) {
	p, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return p.ToDomain()
}

// EncodeYAML checks p, then FromDomain followed by a YAML marshal.
// Programs that cannot be parsed back are rejected.
func EncodeYAML(p *domain.Program) ([]byte, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return FromDomain(p).MarshalYAMLDocument()
}

// EncodeJSON checks p, then FromDomain followed by a JSON marshal.
func EncodeJSON(p *domain.Program) ([]byte, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return FromDomain(p).MarshalJSONDocument()
}
