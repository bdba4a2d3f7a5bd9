package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

const (
	stickDeadzone = 0.2
	// stickLookScale converts right stick deflection to pixels of mouse motion.
	stickLookScale = 8
)

// InputSystem snapshots the keyboard, mouse and first gamepad into the Input
// singleton. Mouse motion is the cursor delta since the previous frame.
type InputSystem struct {
	lastX, lastY int
	primed       bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	cx, cy := ebiten.CursorPosition()
	var dx, dy float32
	if i.primed {
		dx, dy = float32(cx-i.lastX), float32(cy-i.lastY)
	}
	i.lastX, i.lastY, i.primed = cx, cy, true

	next := component.Input{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:      ebiten.IsKeyPressed(ebiten.KeyE),
		Down:    ebiten.IsKeyPressed(ebiten.KeyQ),
		Run:     ebiten.IsKeyPressed(ebiten.KeyShiftLeft),

		MouseDX: dx,
		MouseDY: dy,
		CursorX: float32(cx),
		CursorY: float32(cy),

		LeftPressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		LeftJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		RightPressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		RightJustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),

		Skip:               ebiten.IsKeyPressed(ebiten.KeyAltLeft) && inpututil.IsKeyJustPressed(ebiten.KeyS),
		Escape:             inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleOverlay:      inpututil.IsKeyJustPressed(ebiten.KeyF1),
		TogglePhysicsDebug: inpututil.IsKeyJustPressed(ebiten.KeyF2),
		CycleCamera:        inpututil.IsKeyJustPressed(ebiten.KeyF3),
		CopyPose:           inpututil.IsKeyJustPressed(ebiten.KeyF4),
	}
	// Alt+S is a skip, not a step backwards.
	if next.Skip {
		next.Back = false
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		applyGamepad(&next, gamepads[0])
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		next.ScreenW, next.ScreenH = input.ScreenW, input.ScreenH
		*input = next
	})
}

func applyGamepad(in *component.Input, id ebiten.GamepadID) {
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}
	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	in.Left = in.Left || lx < -stickDeadzone
	in.Right = in.Right || lx > stickDeadzone
	in.Forward = in.Forward || ly < -stickDeadzone
	in.Back = in.Back || ly > stickDeadzone
	in.Run = in.Run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)

	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if rx*rx+ry*ry > stickDeadzone*stickDeadzone {
		in.MouseDX += float32(rx) * stickLookScale
		in.MouseDY += float32(ry) * stickLookScale
	}

	if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight) {
		in.LeftJustPressed = true
	}
	if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft) {
		in.RightJustPressed = true
	}
	in.LeftPressed = in.LeftPressed || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	in.RightPressed = in.RightPressed || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
}
