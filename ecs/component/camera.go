package component

import "github.com/go-gl/mathgl/mgl32"

type Camera struct {
	FOV  float32 // vertical, radians
	Near float32
	Far  float32
}

var CameraComponent = NewComponent[Camera]()

// Projection returns the perspective matrix for the given viewport aspect.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

type CameraController struct {
	Sensitivity float32
	WalkSpeed   float32
	RunSpeed    float32
	Friction    float32

	Yaw      float32
	Pitch    float32
	Velocity mgl32.Vec3

	EyeHeight     float32
	KneeHeight    float32
	ProbeDistance float32
}

var CameraControllerComponent = NewComponent[CameraController]()

func DefaultCameraController() *CameraController {
	return &CameraController{
		Sensitivity:   0.2,
		WalkSpeed:     10,
		RunSpeed:      30,
		Friction:      0.3,
		EyeHeight:     1.7,
		KneeHeight:    0.4,
		ProbeDistance: 0.4,
	}
}

// CameraPlayerConfig gates what the player may do with the camera. The
// tutorial flips these as it unlocks abilities.
type CameraPlayerConfig struct {
	DisableLook     bool
	DisableMovement bool
}

var CameraPlayerConfigComponent = NewComponent[CameraPlayerConfig]()

type CameraModeKind int

const (
	CameraModeMain CameraModeKind = iota
	CameraModeEditor
	CameraModePlayer
)

func (m CameraModeKind) String() string {
	switch m {
	case CameraModeEditor:
		return "Editor"
	case CameraModePlayer:
		return "Player"
	default:
		return "Main"
	}
}

// Next cycles Main -> Editor -> Player -> Main.
func (m CameraModeKind) Next() CameraModeKind {
	return (m + 1) % 3
}

type CameraMode struct {
	Mode CameraModeKind
}

var CameraModeComponent = NewComponent[CameraMode]()
