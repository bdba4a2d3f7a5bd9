package system

import (
	"fmt"
	"sync"

	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

// DebugSystem handles the developer keys: overlay and collider toggles,
// camera mode cycling and copying the camera pose as a level script call.
type DebugSystem struct {
	copy func(text string) error
}

func NewDebugSystem() *DebugSystem {
	return &DebugSystem{copy: copyToClipboard}
}

// NewDebugSystemWithClipboard replaces the clipboard writer.
func NewDebugSystemWithClipboard(copy func(text string) error) *DebugSystem {
	return &DebugSystem{copy: copy}
}

func (d *DebugSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := currentInput(w)
	if settings, ok := singleton(w, component.DebugSettingsComponent.Kind()); ok {
		if in.ToggleOverlay {
			settings.Overlay = !settings.Overlay
		}
		if in.TogglePhysicsDebug {
			settings.Physics = !settings.Physics
		}
	}
	if in.CycleCamera {
		if mode, ok := singleton(w, component.CameraModeComponent.Kind()); ok {
			mode.Mode = mode.Mode.Next()
			log.Info().Stringer("mode", mode.Mode).Msg("debug: camera mode")
		}
	}
	if in.CopyPose && d.copy != nil {
		pose, ok := CameraPose(w)
		if !ok {
			return
		}
		if err := d.copy(pose); err != nil {
			log.Warn().Err(err).Msg("debug: copy camera pose")
			return
		}
		log.Info().Str("pose", pose).Msg("debug: copied camera pose")
	}
}

// CameraPose formats the main camera as a camera() call for level scripts,
// looking one unit ahead.
func CameraPose(w *ecs.World) (string, bool) {
	camE, ok := mainCamera(w)
	if !ok {
		return "", false
	}
	t := globalOf(w, camE)
	p := t.Translation
	l := p.Add(t.Forward())
	return fmt.Sprintf("camera(%.2f, %.2f, %.2f, %.2f, %.2f, %.2f)", p[0], p[1], p[2], l[0], l[1], l[2]), true
}

var clipboardInit = sync.OnceValue(clipboard.Init)

func copyToClipboard(text string) error {
	if err := clipboardInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
