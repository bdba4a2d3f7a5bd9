package component

import "github.com/go-gl/mathgl/mgl32"

// Input is the per-frame snapshot of the keyboard and mouse. It lives on a
// single entity; gameplay systems read it instead of polling the window.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Run     bool

	MouseDX float32
	MouseDY float32
	CursorX float32
	CursorY float32
	ScreenW float32
	ScreenH float32

	LeftPressed      bool
	LeftJustPressed  bool
	RightPressed     bool
	RightJustPressed bool

	Skip               bool
	Escape             bool
	ToggleOverlay      bool
	TogglePhysicsDebug bool
	CycleCamera        bool
	CopyPose           bool
}

var InputComponent = NewComponent[Input]()

// MoveAxis returns x = right-left, y = up-down, z = forward-back.
func (in Input) MoveAxis() mgl32.Vec3 {
	var axis mgl32.Vec3
	if in.Right {
		axis[0]++
	}
	if in.Left {
		axis[0]--
	}
	if in.Up {
		axis[1]++
	}
	if in.Down {
		axis[1]--
	}
	if in.Forward {
		axis[2]++
	}
	if in.Back {
		axis[2]--
	}
	return axis
}

// MovePressed reports whether any of the walking keys is held.
func (in Input) MovePressed() bool {
	return in.Forward || in.Back || in.Left || in.Right
}

func (in Input) MouseMoved() bool {
	return in.MouseDX != 0 || in.MouseDY != 0
}
