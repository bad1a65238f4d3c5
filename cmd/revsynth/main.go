// Command revsynth evolves a reversible circuit approximating a named
// target Boolean function, stepping circuit depth upward and reporting
// the best replicate found at each depth, per spec.md §6.
package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/hydraresearch/revsynth/internal/circuit"
	"github.com/hydraresearch/revsynth/internal/config"
	"github.com/hydraresearch/revsynth/internal/mutation"
	"github.com/hydraresearch/revsynth/internal/optimizer"
	"github.com/hydraresearch/revsynth/internal/render"
	"github.com/hydraresearch/revsynth/internal/resultcache"
	"github.com/hydraresearch/revsynth/internal/rng"
	"github.com/hydraresearch/revsynth/internal/sealedfile"
	"github.com/hydraresearch/revsynth/internal/target"
)

// requiredFlags are the spec.md §6 flags with no default: missing any
// one of these is fatal.
var requiredFlags = []string{
	"output", "function", "num_lines", "min_num_gates", "max_num_gates",
	"num_gates_increment", "num_survivors", "num_offspring", "batch_size",
	"optimizations_per_circuit",
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isTerminal()}).
		With().Timestamp().Logger()

	defaults := config.LoadDefaults()

	var (
		output    = flag.StringP("output", "o", "", "output circuit file path")
		function  = flag.StringP("function", "f", "", "target function name: "+strings.Join(target.Names(), ", "))
		numLines  = flag.UintP("num_lines", "l", 0, "number of wires")
		minGates  = flag.UintP("min_num_gates", "d", 0, "minimum circuit depth")
		maxGates  = flag.UintP("max_num_gates", "D", 0, "maximum circuit depth")
		incGates  = flag.UintP("num_gates_increment", "i", 0, "depth increment per step")
		survivors = flag.UintP("num_survivors", "S", 0, "families retained per generation")
		offspring = flag.UintP("num_offspring", "F", 0, "circuits per family")
		batch     = flag.UintP("batch_size", "b", 0, "fitness-estimation batch size")
		replicas  = flag.UintP("optimizations_per_circuit", "n", 0, "independent replicates run per depth")
		seed      = flag.Int64P("seed", "s", defaults.Seed, "RNG seed; replicate t uses seed+t")
		sign      = flag.Bool("sign", false, "write an ML-DSA-87 signature of the output file")
		verifySig = flag.String("verify-sig", "", "verify a previously-signed file at PATH, print OK/INVALID, and exit")
	)
	flag.Parse()

	if *verifySig != "" {
		runVerify(logger, *verifySig)
		return
	}

	if missing := missingRequired(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "missing required flag(s): %s\n\n", strings.Join(missing, ", "))
		flag.Usage()
		os.Exit(1)
	}

	fn, ok := target.ByName(*function)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown function %q (available: %s)\n", *function, strings.Join(target.Names(), ", "))
		os.Exit(1)
	}

	out, err := os.Create(*output)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *output).Msg("could not create output file")
	}

	run(runConfig{
		logger:    logger,
		out:       out,
		fn:        fn,
		l:         *numLines,
		dMin:      *minGates,
		dMax:      *maxGates,
		dInc:      *incGates,
		survivors: *survivors,
		offspring: *offspring,
		batch:     *batch,
		replicas:  *replicas,
		seed:      *seed,
	})

	if err := out.Close(); err != nil {
		logger.Fatal().Err(err).Str("path", *output).Msg("could not close output file")
	}

	if *sign {
		pub, priv, err := sealedfile.GenerateKeyPair()
		if err != nil {
			logger.Fatal().Err(err).Msg("key generation failed")
		}
		if err := sealedfile.Sign(*output, pub, priv); err != nil {
			logger.Fatal().Err(err).Msg("signing output failed")
		}
		logger.Info().Str("path", *output+".sig").Msg("wrote signature")
	}
}

func isTerminal() bool {
	fi, err := os.Stderr.Stat()
	return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
}

func missingRequired() []string {
	var missing []string
	for _, name := range requiredFlags {
		if !flag.CommandLine.Changed(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func runVerify(logger zerolog.Logger, path string) {
	ok, err := sealedfile.Verify(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("signature verification failed")
		os.Exit(1)
	}
	if !ok {
		fmt.Println("INVALID")
		os.Exit(1)
	}
	fmt.Println("OK")
}

type runConfig struct {
	logger               zerolog.Logger
	out                  *os.File
	fn                   target.Function
	l                    uint
	dMin, dMax, dInc     uint
	survivors, offspring uint
	batch, replicas      uint
	seed                 int64
}

// replicateResult is one goroutine's finished optimizer run at a given
// depth.
type replicateResult struct {
	best      circuit.Circuit
	e, fn, fp float64
}

// run steps circuit depth from dMin to dMax by dInc, and at each depth
// runs cfg.replicas independent optimizer replicates in parallel
// (spec.md §5: one goroutine per replicate, no shared mutable state),
// picks the replicate minimizing e, reports it, and serializes it.
func run(cfg runConfig) {
	cache := resultcache.New()
	ms := mutation.New(cfg.l)

	for d := cfg.dMin; d <= cfg.dMax; d += cfg.dInc {
		generations := 100 * d
		results := make([]replicateResult, cfg.replicas)

		var wg sync.WaitGroup
		for t := uint(0); t < cfg.replicas; t++ {
			wg.Add(1)
			go func(t uint) {
				defer wg.Done()
				r := rng.New(cfg.seed, int(t))
				cache := resultcache.New()
				opt := optimizer.New(r, cfg.l, d, cfg.survivors, cfg.offspring, cfg.fn, ms, cache)
				opt.Optimize(generations, 0.5, cfg.batch)

				best := opt.ComputeBest()
				e, fnRate, fp := best.Simplify(cfg.fn.OutputSize()).Errors(cfg.fn)
				results[t] = replicateResult{best: best, e: e, fn: fnRate, fp: fp}

				cfg.logger.Debug().Uint("d", d).Uint("replicate", t).Float64("e", e).Msg("replicate complete")
			}(t)
		}
		wg.Wait()

		bestIdx := 0
		for i := 1; i < len(results); i++ {
			if results[i].e < results[bestIdx].e {
				bestIdx = i
			}
		}
		chosen := results[bestIdx]

		cfg.logger.Info().
			Uint("l", cfg.l).Uint("d", d).
			Float64("e", chosen.e).Float64("fn", chosen.fn).Float64("fp", chosen.fp).
			Msg("depth step complete")

		if err := render.Diagram(os.Stdout, chosen.best); err != nil {
			cfg.logger.Warn().Err(err).Msg("failed to render circuit diagram")
		}
		simplified := chosen.best.Simplify(cfg.fn.OutputSize())
		if err := render.Diagram(os.Stdout, simplified); err != nil {
			cfg.logger.Warn().Err(err).Msg("failed to render simplified diagram")
		}
		fmt.Printf("%d %d %v %v %v\n", cfg.l, d, chosen.e, chosen.fn, chosen.fp)

		if err := chosen.best.Serialize(cfg.out); err != nil {
			cfg.logger.Fatal().Err(err).Msg("could not serialize chosen circuit")
		}
		fmt.Fprintf(cfg.out, "%d %d %v %v %v %d\n",
			cfg.l, d, chosen.e, chosen.fn, chosen.fp, simplified.QuantumCost())

		// Carry the chosen circuit forward per spec.md §6 step 5. Per the
		// resolved extend-after-depth-increase ambiguity (spec.md §9), this
		// padded circuit is not seeded into the next depth's population —
		// extend is identity on behavior (spec.md §8 property 3), so this
		// step has no effect on the search and exists purely as the
		// documented driver convention.
		carried := chosen.best.Clone()
		carried.Extend(cfg.dInc)
	}
}
