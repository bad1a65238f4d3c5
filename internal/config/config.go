// Package config loads optional environment-sourced defaults for
// cmd/revsynth's non-required flags. Per spec.md §7, required flags
// (--output, --function, --num_lines, --min_num_gates, --max_num_gates)
// are never satisfied from here — a missing one is still fatal.
package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults holds optional-flag defaults, overridable by explicit CLI
// flags.
type Defaults struct {
	Seed      int64
	Threads   int
	OutputDir string
}

// LoadDefaults loads an optional .env file (ignoring its absence,
// exactly as the teacher's IBM Quantum client does) and reads
// REVSYNTH_SEED, REVSYNTH_THREADS, REVSYNTH_OUTPUT_DIR into Defaults,
// falling back to seed 0, GOMAXPROCS threads, and the current directory.
func LoadDefaults() Defaults {
	_ = godotenv.Load() // a missing .env is not an error

	d := Defaults{Seed: 0, Threads: runtime.GOMAXPROCS(0), OutputDir: "."}

	if v := os.Getenv("REVSYNTH_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			d.Seed = seed
		}
	}
	if v := os.Getenv("REVSYNTH_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			d.Threads = n
		}
	}
	if v := os.Getenv("REVSYNTH_OUTPUT_DIR"); v != "" {
		d.OutputDir = v
	}
	return d
}
