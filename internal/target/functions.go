// Package target supplies the pure Boolean target functions the optimizer
// approximates with a reversible circuit: f: {0,1}^n -> {0,1}^m.
package target

import (
	"math/bits"

	"github.com/hydraresearch/revsynth/internal/gate"
)

// Function is the capability the core consumes: a declared input/output
// width and a pure evaluation of the low InputSize bits into the low
// OutputSize bits of the result.
type Function interface {
	InputSize() uint
	OutputSize() uint
	Eval(x gate.Reg) gate.Reg
}

type sizes struct {
	in, out uint
}

func (s sizes) InputSize() uint  { return s.in }
func (s sizes) OutputSize() uint { return s.out }

// popcountFunc implements Function for functions of the form
// "predicate(popcount(x))".
type popcountFunc struct {
	sizes
	predicate func(popcount int) bool
}

func (f popcountFunc) Eval(x gate.Reg) gate.Reg {
	if f.predicate(bits.OnesCount16(x)) {
		return 1
	}
	return 0
}

// modFunc implements Function for "x % n == 0" style predicates.
type modFunc struct {
	sizes
	modulus gate.Reg
}

func (f modFunc) Eval(x gate.Reg) gate.Reg {
	if x%f.modulus == 0 {
		return 1
	}
	return 0
}

// identityFunc returns its input unchanged.
type identityFunc struct{ sizes }

func (f identityFunc) Eval(x gate.Reg) gate.Reg { return x }

// lookupFunc implements Function by table lookup (used for the NthPrime
// functions, whose truth table isn't expressible as a small formula).
type lookupFunc struct {
	sizes
	table []gate.Reg
}

func (f lookupFunc) Eval(x gate.Reg) gate.Reg { return f.table[x] }

// Named built-in functions, per spec.md §6.
var (
	Func2of5  Function = popcountFunc{sizes{5, 1}, func(p int) bool { return p == 2 }}
	Func4mod5 Function = modFunc{sizes{4, 1}, 5}
	Func5mod5 Function = modFunc{sizes{5, 1}, 5}
	Func6sym  Function = popcountFunc{sizes{6, 1}, func(p int) bool { return p >= 2 && p <= 4 }}
	Func9sym  Function = popcountFunc{sizes{9, 1}, func(p int) bool { return p >= 3 && p <= 6 }}
	FuncId    Function = identityFunc{sizes{1, 1}}
	FuncXor5  Function = popcountFunc{sizes{5, 1}, func(p int) bool { return p%2 == 1 }}

	nthPrime3Table = []gate.Reg{2, 3, 5, 7, 11, 13, 17, 19}
	nthPrime4Table = []gate.Reg{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

	FuncNthPrime3 Function = lookupFunc{sizes{3, 5}, nthPrime3Table}
	FuncNthPrime4 Function = lookupFunc{sizes{4, 6}, nthPrime4Table}
)

var byName = map[string]Function{
	"2of5":      Func2of5,
	"4mod5":     Func4mod5,
	"5mod5":     Func5mod5,
	"6sym":      Func6sym,
	"9sym":      Func9sym,
	"Id":        FuncId,
	"Xor5":      FuncXor5,
	"NthPrime3": FuncNthPrime3,
	"NthPrime4": FuncNthPrime4,
}

// ByName looks up a built-in function by the names of spec.md §6.
func ByName(name string) (Function, bool) {
	f, ok := byName[name]
	return f, ok
}

// Names returns the built-in function names in a stable order, for help text.
func Names() []string {
	return []string{"2of5", "4mod5", "5mod5", "6sym", "9sym", "Id", "Xor5", "NthPrime3", "NthPrime4"}
}
