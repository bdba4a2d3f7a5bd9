package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

// groundProbeDistance is how far below the eye the floor is searched for.
const groundProbeDistance = 50

// insideEpsilon is the hit distance below which a ray starts inside a box.
const insideEpsilon = 1e-4

// CameraControllerSystem drives the main camera from Input: mouse look,
// keyboard movement and, in player mode, wall and floor probing against the
// scene.
type CameraControllerSystem struct{}

func NewCameraControllerSystem() *CameraControllerSystem {
	return &CameraControllerSystem{}
}

func (s *CameraControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cam, ok := mainCamera(w)
	if !ok {
		return
	}
	ctrl, ok := ecs.Get(w, cam, component.CameraControllerComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return
	}

	mode := currentCameraMode(w)
	if mode == component.CameraModeMain {
		return
	}
	in := currentInput(w)
	var cfg component.CameraPlayerConfig
	if c, ok := singleton(w, component.CameraPlayerConfigComponent.Kind()); ok {
		cfg = *c
	}

	if !cfg.DisableLook && (mode != component.CameraModeEditor || in.RightPressed) {
		look(ctrl, in)
	}
	t.Rotation = component.YawPitch(ctrl.Yaw, ctrl.Pitch)

	axis := in.MoveAxis()
	if mode != component.CameraModeEditor {
		axis[1] = 0
	}
	if cfg.DisableMovement {
		axis = mgl32.Vec3{}
	}
	accelerate(ctrl, axis, in.Run)

	switch mode {
	case component.CameraModeEditor:
		v := ctrl.Velocity
		step := t.Right().Mul(v[0]).Add(t.Up().Mul(v[1])).Add(t.Forward().Mul(v[2])).Mul(dt)
		t.Translation = t.Translation.Add(step)
	case component.CameraModePlayer:
		t.Translation = walk(w, cam, ctrl, *t)
	}
}

func look(ctrl *component.CameraController, in component.Input) {
	ctrl.Yaw -= in.MouseDX * ctrl.Sensitivity * dt
	ctrl.Pitch -= in.MouseDY * ctrl.Sensitivity * dt
	ctrl.Pitch = common.Clamp(ctrl.Pitch, -math.Pi/2, math.Pi/2)
}

// accelerate sets velocity from the move axis, or lets friction bleed it off
// when there is no input.
func accelerate(ctrl *component.CameraController, axis mgl32.Vec3, run bool) {
	if axis.Len() > 0 {
		speed := ctrl.WalkSpeed
		if run {
			speed = ctrl.RunSpeed
		}
		ctrl.Velocity = axis.Normalize().Mul(speed)
		return
	}
	ctrl.Velocity = ctrl.Velocity.Mul(1 - ctrl.Friction)
	if ctrl.Velocity.LenSqr() < 1e-6 {
		ctrl.Velocity = mgl32.Vec3{}
	}
}

func flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// walk moves the camera in the floor plane, dropping each horizontal
// component that would run into something, then snaps the eye to the floor.
func walk(w *ecs.World, cam ecs.Entity, ctrl *component.CameraController, t component.Transform) mgl32.Vec3 {
	skip := func(e ecs.Entity) bool {
		return isWithin(w, e, cam) || isDynamic(w, e)
	}

	forward := flatten(t.Forward())
	right := flatten(t.Right())
	step := right.Mul(ctrl.Velocity[0] * dt).Add(forward.Mul(ctrl.Velocity[2] * dt))

	pos := t.Translation
	knee := ctrl.KneeHeight - ctrl.EyeHeight
	for _, axis := range []int{0, 2} {
		d := step[axis]
		if d == 0 {
			continue
		}
		var dir mgl32.Vec3
		dir[axis] = float32(math.Copysign(1, float64(d)))
		reach := ctrl.ProbeDistance + float32(math.Abs(float64(d)))

		blocked := false
		for _, origin := range []mgl32.Vec3{pos, pos.Add(mgl32.Vec3{0, knee, 0})} {
			if _, hit := raycastScene(w, spatial.NewRay(origin, dir), reach, skip); hit {
				blocked = true
				break
			}
		}
		if !blocked {
			pos[axis] += d
		}
	}

	// A hit at the origin means the eye is inside a collider, e.g. a door
	// closing on the player. Keep y instead of stacking on top of it.
	if hit, ok := raycastScene(w, spatial.NewRay(pos, mgl32.Vec3{0, -1, 0}), groundProbeDistance, skip); ok && hit.Distance > insideEpsilon {
		pos[1] = hit.Point[1] + ctrl.EyeHeight
	}
	return pos
}
