// Package circuit implements an ordered sequence of reversible gates,
// its batch simulation, exhaustive error metrics, dead-gate elimination,
// and text serialization.
package circuit

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lukechampine.com/blake3"

	"github.com/hydraresearch/revsynth/internal/gate"
	"github.com/hydraresearch/revsynth/internal/target"
)

// Circuit is (l, instructions), an ordered gate sequence over l wires.
type Circuit struct {
	l     uint
	insts []gate.Instruction
}

// New constructs a circuit of depth d over l wires, all gates Id. l must
// not exceed gate.Width; violating this is a programmer error.
func New(l, d uint) Circuit {
	if l > gate.Width {
		panic(fmt.Sprintf("circuit: l=%d exceeds register width %d", l, gate.Width))
	}
	insts := make([]gate.Instruction, d)
	for i := range insts {
		insts[i] = gate.New(gate.Id, 0)
	}
	return Circuit{l: l, insts: insts}
}

// Wires is the number of wires l.
func (c Circuit) Wires() uint { return c.l }

// Depth is the number of instructions d.
func (c Circuit) Depth() uint { return uint(len(c.insts)) }

// At returns the instruction at idx.
func (c Circuit) At(idx uint) gate.Instruction { return c.insts[idx] }

// Set replaces the instruction at idx in place.
func (c Circuit) Set(idx uint, inst gate.Instruction) { c.insts[idx] = inst }

// QuantumCost is the sum of every instruction's quantum cost.
func (c Circuit) QuantumCost() uint {
	var qc uint
	for _, inst := range c.insts {
		qc += inst.QuantumCost()
	}
	return qc
}

// Extend appends n Id instructions, growing the circuit's depth.
func (c *Circuit) Extend(n uint) {
	for i := uint(0); i < n; i++ {
		c.insts = append(c.insts, gate.New(gate.Id, 0))
	}
}

// Clone returns a deep copy whose instruction slice shares no backing
// array with the receiver.
func (c Circuit) Clone() Circuit {
	insts := make([]gate.Instruction, len(c.insts))
	copy(insts, c.insts)
	return Circuit{l: c.l, insts: insts}
}

// Run applies every instruction, in order, to every register in regs, in
// place. No allocation.
func (c Circuit) Run(regs []gate.Reg) {
	for _, inst := range c.insts {
		inst.ApplyBatch(regs)
	}
}

// project extracts the top m wires of r as the circuit's output.
func project(r gate.Reg, l, m uint) gate.Reg {
	return (r >> (l - m)) & ((gate.Reg(1) << m) - 1)
}

// Project extracts the top m wires of an l-wire register r, exactly as
// Errors does internally. Exported for internal/optimizer's per-batch
// fitness scoring, which needs the same projection without re-running a
// full exhaustive sweep.
func Project(r gate.Reg, l, m uint) gate.Reg {
	return project(r, l, m)
}

// Errors evaluates the circuit exhaustively over every input of f and
// returns (e, fn, fp) as defined by spec.md §4.B: e is the fraction of
// mismatched output bits, fn the false-negative rate among truth-positive
// bits, fp the false-positive rate among truth-negative bits. A zero
// denominator yields 0 for that ratio.
func (c Circuit) Errors(f target.Function) (e, fn, fp float64) {
	n := f.InputSize()
	m := f.OutputSize()
	inputCount := uint(1) << n

	regs := make([]gate.Reg, inputCount)
	for i := range regs {
		regs[i] = gate.Reg(i)
	}
	c.Run(regs)

	var mismatches, falseNeg, falsePos, numPositive float64
	total := float64(inputCount) * float64(m)

	for i := uint(0); i < inputCount; i++ {
		exact := f.Eval(gate.Reg(i))
		out := project(regs[i], c.l, m)
		for j := uint(0); j < m; j++ {
			wantBit := (exact >> j) & 1
			gotBit := (out >> j) & 1
			if wantBit == 1 {
				numPositive++
			}
			if wantBit != gotBit {
				mismatches++
				if wantBit == 0 {
					falsePos++
				} else {
					falseNeg++
				}
			}
		}
	}

	if total > 0 {
		e = mismatches / total
	}
	if numPositive > 0 {
		fn = falseNeg / numPositive
	}
	if numNegative := total - numPositive; numNegative > 0 {
		fp = falsePos / numNegative
	}
	return e, fn, fp
}

// lastDeadIndex scans instructions from last to first, tracking the wire
// mask that may still influence the projected output, and returns the
// index of the first dead instruction it finds (per the table in
// spec.md §4.B), or -1 if none is dead.
func lastDeadIndex(insts []gate.Instruction, usedBits gate.Reg) int {
	for idx := len(insts) - 1; idx >= 0; idx-- {
		inst := insts[idx]
		a0, a1, a2 := inst.Args[0], inst.Args[1], inst.Args[2]
		switch inst.Kind {
		case gate.Id:
			return idx
		case gate.X:
			if a0&usedBits == 0 {
				return idx
			}
		case gate.CX:
			if a0&usedBits == 0 {
				return idx
			}
			usedBits |= a1
		case gate.CCX:
			if a0&usedBits == 0 {
				return idx
			}
			usedBits |= a1 | a2
		case gate.Swap:
			if a0&usedBits == 0 && a1&usedBits == 0 {
				return idx
			}
			usedBits |= a0 | a1
		case gate.CSwap:
			if a0&usedBits == 0 && a1&usedBits == 0 {
				return idx
			}
			usedBits |= a0 | a1 | a2
		}
	}
	return -1
}

// Simplify returns a new circuit with every dead gate removed, where m is
// the number of output wires projected (the top m wires). It never
// changes the projected output for any input: for all r,
// project_m(Run(c, r)) == project_m(Run(c.Simplify(m), r)).
//
// This is O(d^2) worst case (restart-on-first-removal); acceptable since
// d is small (tens to hundreds), matching the original's own rationale.
func (c Circuit) Simplify(m uint) Circuit {
	insts := make([]gate.Instruction, len(c.insts))
	copy(insts, c.insts)
	usedTop := ((gate.Reg(1) << m) - 1) << (c.l - m)

	for {
		idx := lastDeadIndex(insts, usedTop)
		if idx < 0 {
			break
		}
		insts = append(insts[:idx], insts[idx+1:]...)
	}
	return Circuit{l: c.l, insts: insts}
}

// Serialize writes "<l> <d>\n" followed by one serialized instruction per
// line.
func (c Circuit) Serialize(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", c.l, len(c.insts)); err != nil {
		return err
	}
	for _, inst := range c.insts {
		if _, err := fmt.Fprintln(w, inst.String()); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize is the inverse of Serialize. An unknown gate name or
// malformed header is fatal (panic), per spec.md §7 — the input is
// assumed to be a previously-written, trusted circuit record.
func Deserialize(r io.Reader) (Circuit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		return Circuit{}, fmt.Errorf("circuit: empty input")
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		panic(fmt.Sprintf("circuit: malformed header %q", sc.Text()))
	}
	l, err := strconv.ParseUint(header[0], 10, 32)
	if err != nil {
		panic(fmt.Sprintf("circuit: malformed header %q: %v", sc.Text(), err))
	}
	d, err := strconv.ParseUint(header[1], 10, 32)
	if err != nil {
		panic(fmt.Sprintf("circuit: malformed header %q: %v", sc.Text(), err))
	}

	c := New(uint(l), uint(d))
	for i := uint(0); i < uint(d); i++ {
		if !sc.Scan() {
			return Circuit{}, fmt.Errorf("circuit: expected %d instructions, got %d", d, i)
		}
		c.insts[i] = gate.MustParse(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Circuit{}, err
	}
	return c, nil
}

// Fingerprint is a stable, collision-resistant BLAKE3-256 digest of the
// circuit's serialized form, hex-encoded. Used as the internal/resultcache
// key; it is not part of the search itself.
func (c Circuit) Fingerprint() string {
	var b strings.Builder
	_ = c.Serialize(&b)
	h := blake3.New(32, nil)
	h.Write([]byte(b.String()))
	return hex.EncodeToString(h.Sum(nil))
}
