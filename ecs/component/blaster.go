package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type BlasterState int

const (
	BlasterDisabled BlasterState = iota
	BlasterEnabled
)

type PolarityBlaster struct {
	State BlasterState
	Held  bool
	// Change is added to a pellet's value per frame of fire.
	Change     float32
	Range      float32
	HoldOffset mgl32.Vec3
	// Firing is +1, -1 or 0 for the current frame.
	Firing float32
	Laser  uint64

	PositiveColor color.NRGBA
	NegativeColor color.NRGBA
}

var PolarityBlasterComponent = NewComponent[PolarityBlaster]()

func DefaultBlaster() *PolarityBlaster {
	return &PolarityBlaster{
		Change:        0.01,
		Range:         20,
		HoldOffset:    mgl32.Vec3{0.3, -0.3, -0.7},
		PositiveColor: color.NRGBA{B: 0xff, A: 0xff},
		NegativeColor: color.NRGBA{R: 0xff, G: 0xff, A: 0xff},
	}
}
