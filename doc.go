/*
Package turing simulates deterministic, single-tape Turing machines.

A machine is a finite transition table, an initial state, a blank symbol and a
set of halting states. It runs against a tape that grows in fixed-size chunks in
either direction, so the head can wander arbitrarily far from where it started.

# Outcomes

Every Step and Run returns a domain.Outcome rather than an error for the three
ways a machine can stop:

  - Halted: the current state is in the halting set.
  - Undefined: no transition exists for the current state and the symbol under the head.
  - BudgetExceeded: Run made its allowed number of transitions without halting.

Errors are reserved for construction problems (malformed transition lines,
unknown directions) and caller bugs (stepping a finished machine, a negative budget).

# Usage

	m, err := turing.NewFromLines("A", 10, "0", []string{
		"A 0 B 1 R",
		"A 1 B 1 L",
		"B 0 A 1 L",
		"B 1 H 1 R",
	}, []domain.StateID{"H"})
	if err != nil {
		log.Fatal(err)
	}

	out, err := m.Run(1000, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Kind, m.Tape().Count("1")) // halted 4

Programs can also be stored as YAML or JSON documents and loaded with Load.
The cmd/turing binary runs, validates and draws such files, and serves them
over HTTP.
*/
package turing
