package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
)

// Transform is the local pose of an entity, relative to its Parent when it
// has one. -Z is forward, +Y is up.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

var TransformComponent = NewComponent[Transform]()

func NewTransform(pos mgl32.Vec3) *Transform {
	return &Transform{Translation: pos, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// NewTransformYaw builds a transform rotated about +Y by yaw radians.
func NewTransformYaw(pos mgl32.Vec3, yaw float32) *Transform {
	t := NewTransform(pos)
	t.Rotation = mgl32.QuatRotate(yaw, AxisY)
	return t
}

func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (t Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisX)
}

func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisY)
}

// Mul composes t with a child-local transform.
func (t Transform) Mul(child Transform) Transform {
	scaled := mgl32.Vec3{
		child.Translation[0] * t.Scale[0],
		child.Translation[1] * t.Scale[1],
		child.Translation[2] * t.Scale[2],
	}
	return Transform{
		Translation: t.Translation.Add(t.Rotation.Rotate(scaled)),
		Rotation:    t.Rotation.Mul(child.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			t.Scale[0] * child.Scale[0],
			t.Scale[1] * child.Scale[1],
			t.Scale[2] * child.Scale[2],
		},
	}
}

// YawPitch builds the rotation used by first-person cameras: yaw about +Y,
// then pitch about the yawed +X.
func YawPitch(yaw, pitch float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, AxisY).Mul(mgl32.QuatRotate(pitch, AxisX))
}

// YawPitchTowards returns the yaw and pitch that point -Z from `from` at `to`.
func YawPitchTowards(from, to mgl32.Vec3) (yaw, pitch float32) {
	dir := to.Sub(from)
	if dir.Len() == 0 {
		return 0, 0
	}
	dir = dir.Normalize()
	yaw = float32(math.Atan2(float64(-dir[0]), float64(-dir[2])))
	pitch = float32(math.Asin(float64(dir[1])))
	return yaw, pitch
}

// GlobalTransform is the world pose, recomputed every frame from Transform and
// the Parent chain.
type GlobalTransform struct {
	Transform
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()

// Parent attaches an entity to another; Transform becomes parent-local.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()
