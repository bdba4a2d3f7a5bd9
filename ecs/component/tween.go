package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
)

type TweenMode int

const (
	TweenOnce TweenMode = iota
	TweenPingPong
	TweenRepeat
)

// Tween animates the local Translation of an entity between From and To.
type Tween struct {
	From     mgl32.Vec3
	To       mgl32.Vec3
	Duration float32
	Elapsed  float32
	Ease     common.Ease
	Mode     TweenMode
	Reverse  bool
	Done     bool
}

var TweenComponent = NewComponent[Tween]()

// Retarget starts a fresh one-shot tween from the current position.
func (t *Tween) Retarget(from, to mgl32.Vec3, seconds float32) {
	t.From = from
	t.To = to
	t.Duration = seconds
	t.Elapsed = 0
	t.Mode = TweenOnce
	t.Reverse = false
	t.Done = false
}

// Spin rotates an entity about +Y at a constant rate in radians per second.
type Spin struct {
	Speed float32
}

var SpinComponent = NewComponent[Spin]()
