// Package render draws a box-and-wire text diagram of a circuit, wire
// by wire, using the glyph and column-width conventions of
// original_source/instruction.hh's print/operator<<.
package render

import (
	"io"
	"strings"

	"github.com/hydraresearch/revsynth/internal/circuit"
	"github.com/hydraresearch/revsynth/internal/gate"
)

// Diagram writes a three-line-per-wire box diagram of c to w, wires in
// ascending index order (wire 0 first), matching the original's row loop.
func Diagram(w io.Writer, c circuit.Circuit) error {
	var out strings.Builder
	for bit := uint(0); bit < c.Wires(); bit++ {
		for row := -1; row <= 1; row++ {
			for idx := uint(0); idx < c.Depth(); idx++ {
				if row == 0 {
					out.WriteRune('─')
				} else {
					out.WriteByte(' ')
				}
				out.WriteString(cell(c.At(idx), bit, row))
			}
			out.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, out.String())
	return err
}

// cell renders one (instruction, wire, row) glyph, row in {-1, 0, 1}.
func cell(inst gate.Instruction, bit uint, row int) string {
	mask := gate.Reg(1) << bit
	a0, a1, a2 := inst.Args[0], inst.Args[1], inst.Args[2]

	switch inst.Kind {
	case gate.Id:
		if mask == a0 {
			switch row {
			case -1:
				return "┌────┐"
			case 0:
				return "┤ Id ├"
			default:
				return "└────┘"
			}
		}
		if row == 0 {
			return "──────"
		}
		return "      "

	case gate.X:
		if mask == a0 {
			switch row {
			case -1:
				return "┌───┐"
			case 0:
				return "┤ X ├"
			default:
				return "└───┘"
			}
		}
		if row == 0 {
			return "─────"
		}
		return "     "

	case gate.CX:
		lo, hi := a0, a1
		if hi < lo {
			lo, hi = hi, lo
		}
		switch {
		case mask == a0:
			switch row {
			case -1:
				return "┌───┐"
			case 0:
				return "┤ X ├"
			default:
				return "└───┘"
			}
		case mask > lo && mask < hi:
			switch row {
			case -1:
				return "  │  "
			case 0:
				return "──┼──"
			default:
				return "  │  "
			}
		case mask == a1:
			switch row {
			case -1:
				if a0 < a1 {
					return "  │  "
				}
				return "     "
			case 0:
				return "──o──"
			default:
				if a0 < a1 {
					return "     "
				}
				return "  │  "
			}
		default:
			if row == 0 {
				return "─────"
			}
			return "     "
		}

	case gate.CCX:
		switch {
		case mask == a0:
			switch row {
			case -1:
				return "┌───┐"
			case 0:
				return "┤ X ├"
			default:
				return "└───┘"
			}
		case mask == a1 || mask == a2:
			if row == 0 {
				return "──o──"
			}
			return "     "
		default:
			if row == 0 {
				return "─────"
			}
			return "     "
		}

	case gate.Swap:
		lo, hi := a0, a1
		if hi < lo {
			lo, hi = hi, lo
		}
		switch {
		case mask == lo:
			switch row {
			case -1:
				return "   "
			case 0:
				return "─╳─"
			default:
				return " │ "
			}
		case mask == hi:
			switch row {
			case -1:
				return " │ "
			case 0:
				return "─╳─"
			default:
				return "   "
			}
		case mask > lo && mask < hi:
			switch row {
			case -1:
				return " │ "
			case 0:
				return "─┼─"
			default:
				return " │ "
			}
		default:
			if row == 0 {
				return "───"
			}
			return "   "
		}

	case gate.CSwap:
		switch mask {
		case a0, a1:
			if row == 0 {
				return "─╳─"
			}
			return "   "
		case a2:
			if row == 0 {
				return "─o─"
			}
			return "   "
		default:
			if row == 0 {
				return "───"
			}
			return "   "
		}
	}
	return ""
}
