package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs/component"
)

func TestDebugToggles(t *testing.T) {
	w := newTestWorld(t)
	d := NewDebugSystemWithClipboard(nil)
	settings, _ := singleton(w, component.DebugSettingsComponent.Kind())
	mode, _ := singleton(w, component.CameraModeComponent.Kind())

	setInput(t, w, component.Input{ToggleOverlay: true, TogglePhysicsDebug: true, CycleCamera: true})
	d.Update(w)
	if !settings.Overlay || !settings.Physics {
		t.Fatalf("settings %+v", settings)
	}
	if mode.Mode != component.CameraModeMain {
		t.Fatalf("player should cycle to main, got %v", mode.Mode)
	}

	setInput(t, w, component.Input{ToggleOverlay: true, CycleCamera: true})
	d.Update(w)
	if settings.Overlay || !settings.Physics || mode.Mode != component.CameraModeEditor {
		t.Fatalf("settings %+v mode %v", settings, mode.Mode)
	}
}

func TestDebugCopyPose(t *testing.T) {
	w := newTestWorld(t)
	spawnCamera(t, w, mgl32.Vec3{1, 1.7, 2}, mgl32.Vec3{1, 1.7, 0})
	var copied string
	d := NewDebugSystemWithClipboard(func(text string) error {
		copied = text
		return nil
	})

	setInput(t, w, component.Input{CopyPose: true})
	d.Update(w)

	if want := "camera(1.00, 1.70, 2.00, 1.00, 1.70, 1.00)"; copied != want {
		t.Fatalf("copied %q want %q", copied, want)
	}
}

func TestDebugCopyPoseErrors(t *testing.T) {
	w := newTestWorld(t)
	calls := 0
	d := NewDebugSystemWithClipboard(func(string) error {
		calls++
		return errors.New("no clipboard")
	})
	setInput(t, w, component.Input{CopyPose: true})

	d.Update(w)
	if calls != 0 {
		t.Fatalf("no camera, nothing to copy")
	}

	spawnCamera(t, w, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	d.Update(w)
	if calls != 1 {
		t.Fatalf("copy calls %d", calls)
	}
}
