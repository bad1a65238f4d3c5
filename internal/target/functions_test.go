package target

import "testing"

func TestByName(t *testing.T) {
	for _, name := range Names() {
		if _, ok := ByName(name); !ok {
			t.Errorf("ByName(%q) not found", name)
		}
	}
	if _, ok := ByName("nonexistent"); ok {
		t.Error("ByName(\"nonexistent\") unexpectedly found")
	}
}

func TestFunc2of5(t *testing.T) {
	for x := uint16(0); x < 32; x++ {
		got := Func2of5.Eval(x)
		popcount := 0
		for b := x; b != 0; b &= b - 1 {
			popcount++
		}
		want := uint16(0)
		if popcount == 2 {
			want = 1
		}
		if got != want {
			t.Errorf("2of5(%05b) = %d, want %d", x, got, want)
		}
	}
}

func TestFunc4mod5(t *testing.T) {
	cases := map[uint16]uint16{0: 1, 5: 1, 4: 0, 9: 0}
	for x, want := range cases {
		if got := Func4mod5.Eval(x); got != want {
			t.Errorf("4mod5(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestFuncNthPrime3(t *testing.T) {
	want := []uint16{2, 3, 5, 7, 11, 13, 17, 19}
	for x, w := range want {
		if got := FuncNthPrime3.Eval(uint16(x)); got != w {
			t.Errorf("NthPrime3(%d) = %d, want %d", x, got, w)
		}
	}
	if FuncNthPrime3.InputSize() != 3 || FuncNthPrime3.OutputSize() != 5 {
		t.Errorf("NthPrime3 sizes = (%d,%d), want (3,5)", FuncNthPrime3.InputSize(), FuncNthPrime3.OutputSize())
	}
}

func TestFuncId(t *testing.T) {
	if FuncId.Eval(0) != 0 || FuncId.Eval(1) != 1 {
		t.Error("Id must return its input unchanged")
	}
}
