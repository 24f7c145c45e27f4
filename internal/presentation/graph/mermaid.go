package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.StateID
	CurrentState  domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart of a transition table.
// It applies semantic styling:
// - Halting: (((Double circle)))
// - Initial: ((Circle))
// - Default: [Rectangle]
//
// Each transition becomes one edge labelled "read/write move".
// Overlay styles (Visited/Current) are applied if provided.
func GenerateMermaid(p *domain.Program, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range statesOf(p) {
		opener, closer := "[", "]"
		switch {
		case p.Halting.Contains(state):
			opener, closer = "(((", ")))"
		case state == p.Initial:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(state), opener, escapeLabel(string(state)), closer)
	}

	for _, k := range p.Table.Keys() {
		tr := p.Table[k]
		label := fmt.Sprintf("%s/%s %s", k.Read, tr.Write, tr.Move.Token())
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(k.State), escapeLabel(label), sanitizeMermaidID(tr.Next))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && id != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

// statesOf collects every state named by the program, sorted.
func statesOf(p *domain.Program) []domain.StateID {
	set := domain.NewStateSet()
	if p.Initial != "" {
		set.Add(p.Initial)
	}
	for h := range p.Halting {
		set.Add(h)
	}
	for k, tr := range p.Table {
		set.Add(k.State)
		set.Add(tr.Next)
	}
	return set.Sorted()
}

// sanitizeMermaidID prefixes IDs so state names like "end" or "1" stay valid.
func sanitizeMermaidID(id domain.StateID) string {
	s := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "\"", "_").Replace(string(id))
	return "s_" + s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
