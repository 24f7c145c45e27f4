/*
Package domain contains the core domain models of the Turing machine engine.

It defines the fundamental entities of a deterministic single-tape machine: symbols,
state identifiers, head directions, the transition table and the outcomes reported by
the engine. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol and StateID: opaque textual tokens compared structurally.
  - Transition: the action (next state, symbol to write, head move) taken for a Key.
  - Table: the deterministic partial function from Key to Transition.
  - Program: a named, storable machine definition (table, blank, halting set...).
  - Outcome: the explicit result of a step or a run (advanced, halted, undefined, budget exceeded).
*/
package domain
