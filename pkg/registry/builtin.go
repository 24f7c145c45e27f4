package registry

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

// Builtins returns a registry with the demonstration machines.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("bb2", BusyBeaver2)
	r.Register("bb4", BusyBeaver4)
	r.Register("turing-first", TuringFirst)
	r.Register("zeno", Zeno)
	return r
}

// BusyBeaver2 halts after 6 steps leaving four 1s.
func BusyBeaver2() *domain.Program {
	b := dsl.New("bb2").Describe("Two-state busy beaver.").TapeLength(10)
	b.State("A").
		On("0", "1", domain.Right, "B").
		On("1", "1", domain.Left, "B")
	b.State("B").
		On("0", "1", domain.Left, "A").
		On("1", "1", domain.Right, "H")
	b.State("H").Halt()
	return b.MustBuild()
}

// BusyBeaver4 halts after 107 steps leaving thirteen 1s.
func BusyBeaver4() *domain.Program {
	b := dsl.New("bb4").Describe("Four-state busy beaver.").TapeLength(20)
	b.State("A").
		On("0", "1", domain.Right, "B").
		On("1", "1", domain.Left, "B")
	b.State("B").
		On("0", "1", domain.Left, "A").
		On("1", "0", domain.Left, "C")
	b.State("C").
		On("0", "1", domain.Right, "H").
		On("1", "1", domain.Left, "D")
	b.State("D").
		On("0", "1", domain.Right, "D").
		On("1", "0", domain.Right, "A")
	b.State("H").Halt()
	return b.MustBuild()
}

// TuringFirst prints 0 and 1 on alternate squares forever.
func TuringFirst() *domain.Program {
	b := dsl.New("turing-first").
		Describe("Turing's first example: 0 . 1 . repeated, never halts.").
		Initial("b").
		Blank(".").
		Alphabet(".", "0", "1").
		TapeLength(10)
	b.State("b").On(".", "0", domain.Right, "c")
	b.State("c").On(".", ".", domain.Right, "e")
	b.State("e").On(".", "1", domain.Right, "f")
	b.State("f").On(".", ".", domain.Right, "b")
	return b.MustBuild()
}

// Zeno toggles one cell forever without moving.
func Zeno() *domain.Program {
	b := dsl.New("zeno").Describe("Toggles one cell forever.")
	b.State("A").On("0", "1", domain.None, "B")
	b.State("B").On("1", "0", domain.None, "A")
	return b.MustBuild()
}
