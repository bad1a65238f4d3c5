// Package resultcache memoizes the (error, quantum cost) pair of a
// simplified circuit keyed by its fingerprint, so that an optimizer
// run's final reporting pass (internal/optimizer.Optimizer.ComputeBest)
// never recomputes the exhaustive error sweep for a circuit it has
// already scored.
package resultcache

import (
	"sync"

	"github.com/hydraresearch/revsynth/internal/circuit"
	"github.com/hydraresearch/revsynth/internal/target"
)

// Result is the cached outcome of Errors/QuantumCost on a simplified
// circuit.
type Result struct {
	Error       float64
	QuantumCost uint
}

// Cache is a concurrency-safe fingerprint -> Result memo.
type Cache struct {
	mu sync.RWMutex
	m  map[string]Result
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{m: make(map[string]Result)}
}

// Get returns the cached result for key, if present.
func (c *Cache) Get(key string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Set stores the result for key.
func (c *Cache) Set(key string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = r
}

// ErrorsAndCost returns (e, quantum cost) for an already-simplified
// circuit against f, consulting and populating the cache by the
// circuit's fingerprint.
func (c *Cache) ErrorsAndCost(simplified circuit.Circuit, f target.Function) (float64, uint) {
	key := simplified.Fingerprint()
	if r, ok := c.Get(key); ok {
		return r.Error, r.QuantumCost
	}
	e, _, _ := simplified.Errors(f)
	qc := simplified.QuantumCost()
	c.Set(key, Result{Error: e, QuantumCost: qc})
	return e, qc
}

// Len reports the number of memoized entries, exposed for tests and
// diagnostics.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
