package runtime

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Validate reports advisory findings about the engine's table against alphabet.
// It never changes engine semantics and is not required before Run.
func (e *Engine) Validate(alphabet []domain.Symbol) []domain.Violation {
	return Validate(e.table, e.halting, alphabet)
}

// Validate checks that:
//   - every read and written symbol belongs to alphabet;
//   - every state used as a key has a transition for every alphabet symbol;
//   - at least one transition leads to a halting state.
//
// Findings are grouped by check; within a group they are ordered by state, then symbol.
func Validate(table domain.Table, halting domain.StateSet, alphabet []domain.Symbol) []domain.Violation {
	known := make(map[domain.Symbol]bool, len(alphabet))
	for _, s := range alphabet {
		known[s] = true
	}

	var violations []domain.Violation
	reachesHalt := false

	for _, k := range table.Keys() {
		tr := table[k]
		if !known[k.Read] {
			violations = append(violations, domain.Violation{
				Kind:    domain.ViolationUnknownSymbol,
				State:   k.State,
				Symbol:  k.Read,
				Message: fmt.Sprintf("state '%s' reads '%s', which is not in the alphabet", k.State, k.Read),
			})
		}
		if !known[tr.Write] {
			violations = append(violations, domain.Violation{
				Kind:    domain.ViolationUnknownSymbol,
				State:   k.State,
				Symbol:  tr.Write,
				Message: fmt.Sprintf("transition (%s, %s) writes '%s', which is not in the alphabet", k.State, k.Read, tr.Write),
			})
		}
		if halting.Contains(tr.Next) {
			reachesHalt = true
		}
	}

	for _, state := range table.States() {
		for _, sym := range alphabet {
			if _, ok := table.Lookup(state, sym); !ok {
				violations = append(violations, domain.Violation{
					Kind:    domain.ViolationMissingTransition,
					State:   state,
					Symbol:  sym,
					Message: fmt.Sprintf("the transition for state '%s' when '%s' is read is never defined", state, sym),
				})
			}
		}
	}

	if !reachesHalt {
		violations = append(violations, domain.Violation{
			Kind:    domain.ViolationUnreachableHalt,
			Message: "no transition leads to a halting state",
		})
	}

	return violations
}
