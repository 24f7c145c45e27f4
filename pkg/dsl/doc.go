/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing Turing machine programs.

It allows developers to define transition tables using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files or the five-token text format. This is
particularly useful for generated machines, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	b := dsl.New("bb2").Initial("A").Blank("0")

	b.State("A").
		On("0", "1", domain.Right, "B").
		On("1", "1", domain.Left, "B")

	b.State("B").
		On("0", "1", domain.Left, "A").
		On("1", "1", domain.Right, "H")

	b.State("H").Halt()

	program, err := b.Build()
	// ... pass program to turing.New(program)
*/
package dsl
