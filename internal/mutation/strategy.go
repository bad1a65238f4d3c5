// Package mutation enumerates the addressable reversible-gate instances
// over a fixed wire count and samples them uniformly by gate kind, per
// spec.md §4.D.
package mutation

import (
	"math/rand"

	"github.com/hydraresearch/revsynth/internal/circuit"
	"github.com/hydraresearch/revsynth/internal/gate"
)

// Strategy enumerates every legal instruction over l wires and samples
// one uniformly over gate kinds, then uniformly over instances of that
// kind. It is stateless after construction (instructionSet and cdf are
// never mutated), so a single Strategy may be shared read-only across
// goroutines that each own their own *rand.Rand.
type Strategy struct {
	l              uint
	instructionSet []gate.Instruction
	cdf            []float64
}

// New builds the fully-connected mutation strategy for l wires.
func New(l uint) *Strategy {
	wires := make([]uint, l)
	for i := range wires {
		wires[i] = uint(i)
	}
	p1 := tuples(wires, 1)

	var instructionSet []gate.Instruction
	perKind := make(map[gate.Kind]int)

	for _, t := range p1 {
		instructionSet = append(instructionSet, gate.New(gate.Id, t[0]))
	}
	perKind[gate.Id] = len(p1)
	for _, t := range p1 {
		instructionSet = append(instructionSet, gate.New(gate.X, t[0]))
	}
	perKind[gate.X] = len(p1)

	if l >= 2 {
		p2 := tuples(wires, 2)
		for _, t := range p2 {
			instructionSet = append(instructionSet, gate.New(gate.CX, t[0], t[1]))
		}
		perKind[gate.CX] = len(p2)
		for _, t := range p2 {
			instructionSet = append(instructionSet, gate.New(gate.Swap, t[0], t[1]))
		}
		perKind[gate.Swap] = len(p2)
	}

	if l >= 3 {
		p3 := tuples(wires, 3)
		for _, t := range p3 {
			instructionSet = append(instructionSet, gate.New(gate.CCX, t[0], t[1], t[2]))
		}
		perKind[gate.CCX] = len(p3)
		for _, t := range p3 {
			instructionSet = append(instructionSet, gate.New(gate.CSwap, t[0], t[1], t[2]))
		}
		perKind[gate.CSwap] = len(p3)
	}

	cdf := make([]float64, len(instructionSet))
	var cum float64
	for i, inst := range instructionSet {
		cum += 1.0 / float64(perKind[inst.Kind])
		cdf[i] = cum
	}
	last := cdf[len(cdf)-1]
	for i := range cdf {
		cdf[i] /= last
	}

	return &Strategy{l: l, instructionSet: instructionSet, cdf: cdf}
}

// tuples returns every ordered k-tuple of pairwise-distinct elements of
// wires, e.g. tuples([0,1,2], 2) = [[0 1] [0 2] [1 0] [1 2] [2 0] [2 1]].
func tuples(wires []uint, k int) [][]uint {
	if k == 0 {
		return [][]uint{{}}
	}
	prev := tuples(wires, k-1)
	out := make([][]uint, 0, len(prev)*len(wires))
	for _, p := range prev {
		for _, w := range wires {
			if contains(p, w) {
				continue
			}
			next := make([]uint, len(p)+1)
			copy(next, p)
			next[len(p)] = w
			out = append(out, next)
		}
	}
	return out
}

func contains(s []uint, v uint) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// randomGate draws p ~ U[0,1] and returns the smallest-index instruction
// whose CDF entry is >= p.
func (s *Strategy) randomGate(rng *rand.Rand) gate.Instruction {
	p := rng.Float64()
	for i, c := range s.cdf {
		if p <= c {
			return s.instructionSet[i]
		}
	}
	return s.instructionSet[len(s.instructionSet)-1]
}

// Randomize independently replaces every instruction of c with a freshly
// sampled one.
func (s *Strategy) Randomize(rng *rand.Rand, c *circuit.Circuit) {
	for i := uint(0); i < c.Depth(); i++ {
		c.Set(i, s.randomGate(rng))
	}
}

// Mutate replaces the instruction at one uniformly random position of c.
func (s *Strategy) Mutate(rng *rand.Rand, c *circuit.Circuit) {
	idx := rng.Intn(int(c.Depth()))
	c.Set(uint(idx), s.randomGate(rng))
}

// InstructionSetSize is the number of addressable instructions over l
// wires, exposed for diagnostics and tests.
func (s *Strategy) InstructionSetSize() int { return len(s.instructionSet) }
