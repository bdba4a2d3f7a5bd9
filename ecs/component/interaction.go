package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type InteractionState int

const (
	InteractionNone InteractionState = iota
	InteractionHovered
	InteractionClicked
)

func (s InteractionState) String() string {
	switch s {
	case InteractionHovered:
		return "Hovered"
	case InteractionClicked:
		return "Clicked"
	default:
		return "None"
	}
}

// CursorInteraction is recomputed every frame from the cursor ray.
type CursorInteraction struct {
	State InteractionState
}

var CursorInteractionComponent = NewComponent[CursorInteraction]()

// InteractionTime blocks clicks until its timer finishes.
type InteractionTime struct {
	Timer Timer
}

var InteractionTimeComponent = NewComponent[InteractionTime]()

// Cursor is the singleton result of this frame's cursor ray.
type Cursor struct {
	Hit      bool
	Entity   uint64
	Point    mgl32.Vec3
	Distance float32
}

var CursorComponent = NewComponent[Cursor]()

type CursorConfig struct {
	HoverColor    color.NRGBA
	ClickedColor  color.NRGBA
	DisabledColor color.NRGBA
	Width         float32
	Range         float32
}

var CursorConfigComponent = NewComponent[CursorConfig]()

func DefaultCursorConfig() *CursorConfig {
	return &CursorConfig{
		HoverColor:    color.NRGBA{R: 0x32, G: 0xcd, B: 0x32, A: 0xff},
		ClickedColor:  color.NRGBA{G: 0x80, A: 0xff},
		DisabledColor: color.NRGBA{R: 0xff, A: 0xff},
		Width:         10,
		Range:         20,
	}
}
