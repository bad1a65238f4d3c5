// Package optimizer implements the (μ, λ)-style evolutionary search
// described in spec.md §4.E/§5: a population of S families of F
// circuits each, a persistent pool of misclassifying ("hard") inputs
// replayed across generations, and generational survivor selection by
// fitness then simplified quantum cost.
package optimizer

import (
	"math/rand"

	"github.com/hydraresearch/revsynth/internal/circuit"
	"github.com/hydraresearch/revsynth/internal/gate"
	"github.com/hydraresearch/revsynth/internal/mutation"
	"github.com/hydraresearch/revsynth/internal/resultcache"
	"github.com/hydraresearch/revsynth/internal/target"
)

// Optimizer owns one population and its own RNG stream; it shares no
// mutable state with any other Optimizer. A driver runs N of these
// concurrently, one per goroutine, each with its own seed+threadIndex
// RNG (internal/rng.New) and never touches another's fields.
type Optimizer struct {
	l, d uint
	s, f uint
	fn   target.Function
	ms   *mutation.Strategy
	rng  *rand.Rand

	fails      []gate.Reg
	population []circuit.Circuit
	cache      *resultcache.Cache
}

// New builds an optimizer over a freshly randomized population of S*F
// circuits of depth d over l wires, targeting fn.
func New(rng *rand.Rand, l, d, s, f uint, fn target.Function, ms *mutation.Strategy, cache *resultcache.Cache) *Optimizer {
	pop := make([]circuit.Circuit, s*f)
	for i := range pop {
		pop[i] = circuit.New(l, d)
		ms.Randomize(rng, &pop[i])
	}
	return &Optimizer{
		l: l, d: d, s: s, f: f,
		fn: fn, ms: ms, rng: rng,
		population: pop,
		cache:      cache,
	}
}

// Population exposes the live population slice (shared backing array
// with the optimizer's internal state; callers must not retain it
// across a call to Optimize).
func (o *Optimizer) Population() []circuit.Circuit { return o.population }

// Optimize runs generations rounds of run_generation with dilution ds
// and batch size b.
func (o *Optimizer) Optimize(generations uint, ds float64, b uint) {
	for g := uint(0); g < generations; g++ {
		o.runGeneration(ds, b)
	}
}

// sampleBatch builds one evaluation batch of size b: up to
// floor((1-ds)*b) inputs drawn without replacement from the hard-input
// pool via partial Fisher-Yates, the remainder sampled uniformly from
// [0, 2^input_size).
func (o *Optimizer) sampleBatch(ds float64, b uint) []gate.Reg {
	numFails := len(o.fails)
	if cap := int((1 - ds) * float64(b)); cap < numFails {
		numFails = cap
	}
	if numFails < 0 {
		numFails = 0
	}

	inputs := make([]gate.Reg, b)
	for i := 0; i < numFails; i++ {
		idx := o.rng.Intn(len(o.fails) - i)
		tail := len(o.fails) - 1 - i
		inputs[i] = o.fails[idx]
		o.fails[idx], o.fails[tail] = o.fails[tail], o.fails[idx]
	}

	maxInput := (gate.Reg(1) << o.fn.InputSize()) - 1
	for i := uint(numFails); i < b; i++ {
		inputs[i] = gate.Reg(o.rng.Intn(int(maxInput) + 1))
	}
	return inputs
}

// estimateFitness scores every circuit in circuits against one shared
// batch, returning per-circuit fitness and the inputs that
// misclassified on at least one output bit (appearing once per
// misclassified bit, per spec.md §4.E — no dedup).
func (o *Optimizer) estimateFitness(circuits []circuit.Circuit, ds float64, b uint) (fitness []float64, newFails []gate.Reg) {
	inputs := o.sampleBatch(ds, b)
	m := o.fn.OutputSize()

	fitness = make([]float64, len(circuits))
	outputs := make([]gate.Reg, b)
	for i, c := range circuits {
		copy(outputs, inputs)
		c.Run(outputs)

		var matches float64
		for k := uint(0); k < b; k++ {
			want := o.fn.Eval(inputs[k])
			got := circuit.Project(outputs[k], o.l, m)
			for j := uint(0); j < m; j++ {
				if (want>>j)&1 == (got>>j)&1 {
					matches++
				} else {
					newFails = append(newFails, inputs[k])
				}
			}
		}
		fitness[i] = matches / (float64(m) * float64(b))
	}
	return fitness, newFails
}

// runGeneration performs one generation: per family, score and select a
// survivor; refill each family with F-1 mutated clones of its survivor;
// replace the fails pool; reshuffle the population.
func (o *Optimizer) runGeneration(ds float64, b uint) {
	survivors := make([]circuit.Circuit, 0, o.s)
	var newFails []gate.Reg

	for i := uint(0); i < o.s; i++ {
		family := o.population[o.f*i : o.f*i+o.f]
		fit, fail := o.estimateFitness(family, ds, b)
		newFails = append(newFails, fail...)

		bestIdx := 0
		bestFitness := fit[0]
		bestQC := family[0].Simplify(o.fn.OutputSize()).QuantumCost()
		for idx := 1; idx < int(o.f); idx++ {
			qc := family[idx].Simplify(o.fn.OutputSize()).QuantumCost()
			if fit[idx] > bestFitness || (fit[idx] == bestFitness && qc < bestQC) {
				bestIdx, bestFitness, bestQC = idx, fit[idx], qc
			}
		}
		survivors = append(survivors, family[bestIdx].Clone())
	}

	o.fails = newFails
	o.population = o.population[:0]
	for _, survivor := range survivors {
		o.population = append(o.population, survivor)
		for i := uint(0); i < o.f-1; i++ {
			offspring := survivor.Clone()
			o.ms.Mutate(o.rng, &offspring)
			o.population = append(o.population, offspring)
		}
	}
	o.rng.Shuffle(len(o.population), func(i, j int) {
		o.population[i], o.population[j] = o.population[j], o.population[i]
	})
}

// ComputeBest scans the whole population and returns the circuit whose
// simplified form has the lowest error e, breaking ties by lowest
// simplified quantum cost then earliest population index. Scoring is
// memoized through the optimizer's result cache (if any) by fingerprint,
// so a circuit that recurs across generations is scored once.
func (o *Optimizer) ComputeBest() circuit.Circuit {
	m := o.fn.OutputSize()

	best := o.population[0]
	bestE := 1.0
	bestQC := ^uint(0)

	for _, c := range o.population {
		simp := c.Simplify(m)
		var e float64
		var qc uint
		if o.cache != nil {
			e, qc = o.cache.ErrorsAndCost(simp, o.fn)
		} else {
			e, _, _ = simp.Errors(o.fn)
			qc = simp.QuantumCost()
		}
		if e < bestE || (e == bestE && qc < bestQC) {
			best, bestE, bestQC = c, e, qc
		}
	}
	return best
}
