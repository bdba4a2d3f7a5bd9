package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

func TestCameraLook(t *testing.T) {
	tests := []struct {
		name      string
		mode      component.CameraModeKind
		in        component.Input
		noLook    bool
		wantTurns bool
	}{
		{"player turns", component.CameraModePlayer, component.Input{MouseDX: 10}, false, true},
		{"player locked", component.CameraModePlayer, component.Input{MouseDX: 10}, true, false},
		{"editor without button", component.CameraModeEditor, component.Input{MouseDX: 10}, false, false},
		{"editor with button", component.CameraModeEditor, component.Input{MouseDX: 10, RightPressed: true}, false, true},
		{"main ignores input", component.CameraModeMain, component.Input{MouseDX: 10}, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			cam := spawnCamera(t, w, mgl32.Vec3{0, 1.7, 0}, mgl32.Vec3{0, 1.7, -1})
			mode, _ := singleton(w, component.CameraModeComponent.Kind())
			mode.Mode = tc.mode
			cfg, _ := singleton(w, component.CameraPlayerConfigComponent.Kind())
			cfg.DisableLook = tc.noLook
			setInput(t, w, tc.in)

			NewCameraControllerSystem().Update(w)

			ctrl, _ := ecs.Get(w, cam, component.CameraControllerComponent.Kind())
			if turned := ctrl.Yaw != 0; turned != tc.wantTurns {
				t.Fatalf("yaw %v, want turned=%v", ctrl.Yaw, tc.wantTurns)
			}
		})
	}
}

func TestCameraPitchClamped(t *testing.T) {
	w := newTestWorld(t)
	cam := spawnCamera(t, w, mgl32.Vec3{0, 1.7, 0}, mgl32.Vec3{0, 1.7, -1})
	setInput(t, w, component.Input{MouseDY: -100000})
	NewCameraControllerSystem().Update(w)
	ctrl, _ := ecs.Get(w, cam, component.CameraControllerComponent.Kind())
	if ctrl.Pitch > mgl32.DegToRad(90)+1e-4 {
		t.Fatalf("pitch %v past straight up", ctrl.Pitch)
	}
}

func TestCameraWalk(t *testing.T) {
	step := float32(10) * dt
	diag := step * float32(math.Sqrt2/2)
	forward := component.Input{Forward: true}
	tests := []struct {
		name  string
		in    component.Input
		setup func(t *testing.T, w *ecs.World, cam ecs.Entity)
		start mgl32.Vec3
		want  mgl32.Vec3
	}{
		{
			name:  "open space",
			in:    forward,
			start: mgl32.Vec3{0, 1.7, 0},
			want:  mgl32.Vec3{0, 1.7, -step},
		},
		{
			name: "wall ahead",
			in:   forward,
			setup: func(t *testing.T, w *ecs.World, _ ecs.Entity) {
				spawnBox(t, w, mgl32.Vec3{0, 1, -0.5}, mgl32.Vec3{2, 1, 0.05}, component.LayerSolid)
			},
			start: mgl32.Vec3{0, 1.7, 0},
			want:  mgl32.Vec3{0, 1.7, 0},
		},
		{
			name: "diagonal slides along wall",
			in:   component.Input{Forward: true, Right: true},
			setup: func(t *testing.T, w *ecs.World, _ ecs.Entity) {
				spawnBox(t, w, mgl32.Vec3{0, 1, -0.5}, mgl32.Vec3{2, 1, 0.05}, component.LayerSolid)
			},
			start: mgl32.Vec3{0, 1.7, 0},
			want:  mgl32.Vec3{diag, 1.7, 0},
		},
		{
			name: "knee blocks low box",
			in:   forward,
			setup: func(t *testing.T, w *ecs.World, _ ecs.Entity) {
				spawnBox(t, w, mgl32.Vec3{0, 0.4, -0.5}, mgl32.Vec3{2, 0.4, 0.05}, component.LayerSolid)
			},
			start: mgl32.Vec3{0, 1.7, 0},
			want:  mgl32.Vec3{0, 1.7, 0},
		},
		{
			name: "own child ignored",
			in:   forward,
			setup: func(t *testing.T, w *ecs.World, cam ecs.Entity) {
				held := spawnBox(t, w, mgl32.Vec3{0, 1.7, -0.3}, mgl32.Vec3{0.15, 0.2, 0.45}, component.LayerSolid)
				if err := ecs.Add(w, held, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(cam)}); err != nil {
					t.Fatalf("add parent: %v", err)
				}
			},
			start: mgl32.Vec3{0, 1.7, 0},
			want:  mgl32.Vec3{0, 1.7, -step},
		},
		{
			name: "snaps to floor",
			in:   forward,
			setup: func(t *testing.T, w *ecs.World, _ ecs.Entity) {
				spawnBox(t, w, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{5, 0.5, 5}, component.LayerSurface)
			},
			start: mgl32.Vec3{0, 3, 0},
			want:  mgl32.Vec3{0, 1.7, -step},
		},
		{
			name: "inside a box keeps height",
			setup: func(t *testing.T, w *ecs.World, _ ecs.Entity) {
				spawnBox(t, w, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{5, 0.5, 5}, component.LayerSurface)
				spawnBox(t, w, mgl32.Vec3{0, 1.25, 0}, mgl32.Vec3{0.75, 1.25, 0.1}, component.LayerSolid)
			},
			start: mgl32.Vec3{0, 1.7, 0},
			want:  mgl32.Vec3{0, 1.7, 0},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			cam := spawnCamera(t, w, tc.start, tc.start.Add(mgl32.Vec3{0, 0, -1}))
			if tc.setup != nil {
				tc.setup(t, w, cam)
			}
			setInput(t, w, tc.in)

			run(w, 1, NewSceneSystem(), NewCameraControllerSystem())

			tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
			if !approxVec(tr.Translation, tc.want) {
				t.Fatalf("got %v want %v", tr.Translation, tc.want)
			}
		})
	}
}

func TestCameraMovementLocked(t *testing.T) {
	w := newTestWorld(t)
	cam := spawnCamera(t, w, mgl32.Vec3{0, 1.7, 0}, mgl32.Vec3{0, 1.7, -1})
	cfg, _ := singleton(w, component.CameraPlayerConfigComponent.Kind())
	cfg.DisableMovement = true
	setInput(t, w, component.Input{Forward: true, Run: true})

	run(w, 5, NewCameraControllerSystem())

	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !approxVec(tr.Translation, mgl32.Vec3{0, 1.7, 0}) {
		t.Fatalf("camera moved to %v", tr.Translation)
	}
}

func TestCameraFrictionStops(t *testing.T) {
	w := newTestWorld(t)
	cam := spawnCamera(t, w, mgl32.Vec3{0, 1.7, 0}, mgl32.Vec3{0, 1.7, -1})
	mode, _ := singleton(w, component.CameraModeComponent.Kind())
	mode.Mode = component.CameraModeEditor
	setInput(t, w, component.Input{Up: true})
	run(w, 1, NewCameraControllerSystem())

	ctrl, _ := ecs.Get(w, cam, component.CameraControllerComponent.Kind())
	if ctrl.Velocity[1] <= 0 {
		t.Fatalf("editor camera should fly up, velocity %v", ctrl.Velocity)
	}

	setInput(t, w, component.Input{})
	run(w, 200, NewCameraControllerSystem())
	if ctrl.Velocity != (mgl32.Vec3{}) {
		t.Fatalf("friction should stop the camera, velocity %v", ctrl.Velocity)
	}
}
