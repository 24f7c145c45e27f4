package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// Validate prints the advisory validation report for the program at path and
// returns the number of findings.
func Validate(w io.Writer, path string) (int, error) {
	m, err := turing.Load(path)
	if err != nil {
		return 0, err
	}
	violations := m.Validate()
	return len(violations), printMarkdown(w, tui.ValidationMarkdown(m.Name, violations))
}

// Describe prints a summary and the transition table of the program at path.
func Describe(w io.Writer, path string) error {
	p, err := file.LoadFile(path)
	if err != nil {
		return err
	}
	return printMarkdown(w, tui.DescribeMarkdown(p))
}

// Graph prints a Mermaid diagram of the program at path. With runSteps > 0 the
// machine is run first and the visited and current states are highlighted.
func Graph(w io.Writer, path string, runSteps int) error {
	m, err := turing.Load(path)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if runSteps > 0 {
		visited := []domain.StateID{m.State()}
		if _, err := m.Run(runSteps, func(int, *tape.Tape) {
			visited = append(visited, m.State())
		}); err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{VisitedStates: visited, CurrentState: m.State()}
	}

	_, err = fmt.Fprint(w, graph.GenerateMermaid(m.Program(), overlay))
	return err
}
