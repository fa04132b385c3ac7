package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 4, 16)

	out := EnsureLen(buf, 8)
	if len(out) != 8 {
		t.Fatalf("len = %d, want 8", len(out))
	}
	if &out[0] != &buf[0] {
		t.Fatal("expected capacity reuse for n <= cap")
	}

	out = EnsureLen(buf, 32)
	if len(out) != 32 {
		t.Fatalf("len = %d, want 32", len(out))
	}

	out = EnsureLen(buf, 0)
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestPadZeros(t *testing.T) {
	in := []float64{1, 2, 3}

	out := PadZeros(in, 5)
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}
	if out[0] != 1 || out[2] != 3 || out[3] != 0 || out[4] != 0 {
		t.Fatalf("unexpected padding: %v", out)
	}

	same := PadZeros(in, 2)
	if len(same) != 3 {
		t.Fatalf("len = %d, want original 3", len(same))
	}
	if &same[0] != &in[0] {
		t.Fatal("expected original slice when no padding is needed")
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, -2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
