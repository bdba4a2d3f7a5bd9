package component

import "image/color"

// Pellet value lives in [0,1].
type Pellet struct {
	Value float32
}

var PelletComponent = NewComponent[Pellet]()

// PelletColor shades from red at 0 to green at 1.
func PelletColor(v float32) color.NRGBA {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return color.NRGBA{
		R: uint8((1 - v) * 0.5 * 255),
		G: uint8(v * 0.5 * 255),
		A: 0xff,
	}
}
