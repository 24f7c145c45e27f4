package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// DescribeMarkdown renders a program summary and its transition table.
func DescribeMarkdown(p *domain.Program) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", nameOf(p))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	halting := make([]string, 0, len(p.Halting))
	for _, h := range p.Halting.Sorted() {
		halting = append(halting, code(string(h)))
	}
	symbols := make([]string, 0)
	for _, s := range p.Symbols() {
		symbols = append(symbols, code(string(s)))
	}

	b.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Initial state | %s |\n", code(string(p.Initial)))
	fmt.Fprintf(&b, "| Halting states | %s |\n", orNone(strings.Join(halting, ", ")))
	fmt.Fprintf(&b, "| Blank | %s |\n", code(string(p.Blank)))
	fmt.Fprintf(&b, "| Alphabet | %s |\n", orNone(strings.Join(symbols, ", ")))
	fmt.Fprintf(&b, "| Tape length | %d |\n", p.TapeLength)
	fmt.Fprintf(&b, "| Transitions | %d |\n", len(p.Table))

	b.WriteString("\n## Transitions\n\n")
	if len(p.Table) == 0 {
		b.WriteString("_No transitions defined._\n")
		return b.String()
	}
	b.WriteString("| State | Read | Next | Write | Move |\n|---|---|---|---|---|\n")
	for _, k := range p.Table.Keys() {
		tr := p.Table[k]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			code(string(k.State)), code(string(k.Read)),
			code(string(tr.Next)), code(string(tr.Write)), tr.Move.Token())
	}
	return b.String()
}

// ValidationMarkdown renders validation findings for a program.
func ValidationMarkdown(name string, violations []domain.Violation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Validation: %s\n\n", name)

	if len(violations) == 0 {
		b.WriteString("No findings. The table is total over its alphabet and can reach a halting state.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d finding(s). Validation is advisory; the machine can still run.\n\n", len(violations))
	b.WriteString("| Kind | State | Symbol | Message |\n|---|---|---|---|\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			v.Kind, orNone(code(string(v.State))), orNone(code(string(v.Symbol))), escapePipes(v.Message))
	}
	return b.String()
}

func nameOf(p *domain.Program) string {
	if p.Name == "" {
		return "(unnamed program)"
	}
	return p.Name
}

func code(s string) string {
	if s == "" {
		return ""
	}
	if strings.TrimSpace(s) == "" {
		return "` `"
	}
	return "`" + s + "`"
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
