// Package rng provides the deterministic, seedable random source used by
// every optimizer/mutation-strategy goroutine. Per spec.md §5/§9, thread
// t seeds with seed+t, runs are fully reproducible given (seed, config),
// and no RNG state crosses goroutines.
//
// The source is a BLAKE2Xb extendable-output stream (DEDIS Kyber's
// go.dedis.ch/kyber/v3/xof/blake2xb), the same deterministic-XOF
// machinery the teacher package used for quantum-safe random byte
// generation, here re-purposed as a plain PRNG source: no group or
// scalar arithmetic is performed, only XOF bytes consumed as uint64s.
package rng

import (
	"encoding/binary"
	"io"
	"math/rand"

	"go.dedis.ch/kyber/v3/xof/blake2xb"
)

// xofSource adapts a kyber XOF stream to math/rand's rand.Source64.
type xofSource struct {
	seed [8]byte
	xof  io.Reader
}

func newXofSource(combinedSeed int64) *xofSource {
	s := &xofSource{}
	binary.LittleEndian.PutUint64(s.seed[:], uint64(combinedSeed))
	s.xof = blake2xb.New(s.seed[:])
	return s
}

// Uint64 reads the next 8 bytes of the deterministic stream.
func (s *xofSource) Uint64() uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(s.xof, buf[:]); err != nil {
		panic("rng: XOF stream read failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Int63 satisfies rand.Source.
func (s *xofSource) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Seed re-derives the stream from a new combined seed. Provided to
// satisfy rand.Source; New is the normal construction path.
func (s *xofSource) Seed(seed int64) {
	*s = *newXofSource(seed)
}

// New builds the deterministic per-thread RNG: thread threadIndex of a
// run seeded with seed always produces the same stream, independent of
// how many other threads run alongside it (spec.md §5: "thread t seeds
// with seed + t").
func New(seed int64, threadIndex int) *rand.Rand {
	return rand.New(newXofSource(seed + int64(threadIndex)))
}
