package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; every system steps by FixedDelta.
	TPS        = 60
	FixedDelta = float32(1.0 / TPS)
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Ease maps normalized progress t in [0,1] to eased progress.
type Ease string

const (
	EaseLinear    Ease = "linear"
	EaseSineInOut Ease = "sine_in_out"
	EaseQuadInOut Ease = "quad_in_out"
)

func (e Ease) Apply(t float32) float32 {
	t = Clamp01(t)
	switch e {
	case EaseSineInOut:
		return float32(-(math.Cos(math.Pi*float64(t)) - 1) / 2)
	case EaseQuadInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	default:
		return t
	}
}
