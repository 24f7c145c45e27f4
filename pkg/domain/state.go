package domain

// Mode defines the conceptual mode of the engine mechanics.
type Mode string

const (
	ModeRunning Mode = "running" // Not halted and not yet blocked
	ModeHalted  Mode = "halted"  // Current state is in the halting set
	ModeStuck   Mode = "stuck"   // No transition for the symbol under the head
)

// Terminal reports whether no further step is permitted.
func (m Mode) Terminal() bool {
	return m == ModeHalted || m == ModeStuck
}

// OutcomeKind classifies the result of a step or a run.
type OutcomeKind string

const (
	OutcomeAdvanced       OutcomeKind = "advanced"
	OutcomeHalted         OutcomeKind = "halted"
	OutcomeUndefined      OutcomeKind = "undefined"
	OutcomeBudgetExceeded OutcomeKind = "budget_exceeded"
)

// Outcome is the explicit result of Step or Run.
// Halting, undefined transitions and budget exhaustion are values, never errors.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Detail is a human readable message (set for Undefined).
	Detail string `json:"detail,omitempty"`

	// Missing holds the (state, symbol) pair that had no transition (Undefined only).
	Missing *Key `json:"missing,omitempty"`

	// Steps is the number of successful transitions performed by the engine so far.
	Steps int `json:"steps"`
}

// Terminal reports whether the outcome ends the machine (Halted or Undefined).
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeHalted || o.Kind == OutcomeUndefined
}

func (o Outcome) String() string {
	if o.Detail != "" {
		return string(o.Kind) + ": " + o.Detail
	}
	return string(o.Kind)
}
