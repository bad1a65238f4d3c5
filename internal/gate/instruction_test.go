package gate

import "testing"

func TestApplyXSelfInverse(t *testing.T) {
	x := New(X, 0)
	var r Reg = 0b101
	r = x.Apply(x.Apply(r))
	if r != 0b101 {
		t.Fatalf("X,X should be identity, got %03b", r)
	}
}

func TestApplyCX(t *testing.T) {
	// l=2, cX(target=0, control=1): control on bit 1, target on bit 0.
	inst := New(CX, 0, 1)
	cases := map[Reg]Reg{
		0b00: 0b00,
		0b01: 0b01,
		0b10: 0b11,
		0b11: 0b10,
	}
	for in, want := range cases {
		if got := inst.Apply(in); got != want {
			t.Errorf("cX(%02b) = %02b, want %02b", in, got, want)
		}
	}
}

func TestApplySwap(t *testing.T) {
	inst := New(Swap, 0, 2)
	cases := map[Reg]Reg{
		0b001: 0b100,
		0b100: 0b001,
		0b010: 0b010,
		0b111: 0b111,
	}
	for in, want := range cases {
		if got := inst.Apply(in); got != want {
			t.Errorf("Swap(%03b) = %03b, want %03b", in, got, want)
		}
	}
}

func TestApplyToffoli(t *testing.T) {
	inst := New(CCX, 0, 1, 2)
	cases := map[Reg]Reg{
		0b011: 0b011,
		0b110: 0b111,
		0b111: 0b110,
		0b001: 0b001,
	}
	for in, want := range cases {
		if got := inst.Apply(in); got != want {
			t.Errorf("ccX(%03b) = %03b, want %03b", in, got, want)
		}
	}
}

func TestApplyFredkin(t *testing.T) {
	inst := New(CSwap, 0, 1, 2)
	// control bit 2 unset: no swap.
	if got := inst.Apply(0b011); got != 0b011 {
		t.Errorf("cSwap(%03b) = %03b, want unchanged", 0b011, got)
	}
	// control bit 2 set: swap bits 0 and 1.
	if got := inst.Apply(0b101); got != 0b110 {
		t.Errorf("cSwap(%03b) = %03b, want %03b", 0b101, got, 0b110)
	}
}

func TestQuantumCostTable(t *testing.T) {
	want := map[Kind]uint{Id: 0, X: 1, CX: 1, CCX: 5, Swap: 3, CSwap: 7}
	for k, cost := range want {
		if got := k.QuantumCost(); got != cost {
			t.Errorf("%s.QuantumCost() = %d, want %d", k, got, cost)
		}
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	insts := []Instruction{
		New(Id, 3),
		New(X, 5),
		New(CX, 1, 4),
		New(CCX, 0, 1, 2),
		New(Swap, 2, 7),
		New(CSwap, 0, 1, 2),
	}
	for _, inst := range insts {
		line := inst.String()
		parsed, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", line, err)
		}
		if parsed != inst {
			t.Errorf("round-trip mismatch for %q: got %+v, want %+v", line, parsed, inst)
		}
	}
}

func TestParseUnknownGateIsError(t *testing.T) {
	if _, err := Parse("Frob 0 1"); err == nil {
		t.Fatal("expected error for unknown gate name")
	}
}

func TestParseWrongArityIsError(t *testing.T) {
	if _, err := Parse("cX 0"); err == nil {
		t.Fatal("expected error for wrong arity")
	}
}
