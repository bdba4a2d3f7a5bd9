package common

import "testing"

func TestEaseEndpoints(t *testing.T) {
	for _, ease := range []Ease{EaseLinear, EaseSineInOut, EaseQuadInOut, Ease("unknown")} {
		t.Run(string(ease), func(t *testing.T) {
			if got := ease.Apply(0); got != 0 {
				t.Fatalf("Apply(0) = %v, want 0", got)
			}
			if got := ease.Apply(1); got < 0.9999 || got > 1.0001 {
				t.Fatalf("Apply(1) = %v, want 1", got)
			}
			if got := ease.Apply(-3); got != 0 {
				t.Fatalf("Apply clamps below, got %v", got)
			}
		})
	}
}

func TestSineInOutMidpoint(t *testing.T) {
	got := EaseSineInOut.Apply(0.5)
	if got < 0.4999 || got > 0.5001 {
		t.Fatalf("expected 0.5 at midpoint, got %v", got)
	}
	if EaseSineInOut.Apply(0.25) >= 0.25 {
		t.Fatalf("sine in-out should start slower than linear")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float32
		want      float32
	}{
		{"below", -1, 0, 1, 0},
		{"inside", 0.3, 0, 1, 0.3},
		{"above", 2, 0, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
				t.Fatalf("Clamp(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}
