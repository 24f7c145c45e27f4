package domain

// Defaults used when a program leaves a field empty.
const (
	// DefaultTapeLength is the initial materialized tape length.
	DefaultTapeLength = 50

	// DefaultBlank is the blank symbol.
	DefaultBlank Symbol = "0"

	// DefaultMaxSteps is the run budget used by the CLI and HTTP adapters.
	DefaultMaxSteps = 1000
)
