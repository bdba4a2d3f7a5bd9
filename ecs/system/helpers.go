package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

const dt = common.FixedDelta

// maxParentDepth bounds parent walks so a bad cycle cannot hang a frame.
const maxParentDepth = 16

func singleton[T any](w *ecs.World, kind component.ComponentKind[T]) (*T, bool) {
	e, ok := ecs.First(w, kind)
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, kind)
}

func currentInput(w *ecs.World) component.Input {
	if in, ok := singleton(w, component.InputComponent.Kind()); ok {
		return *in
	}
	return component.Input{}
}

func currentCameraMode(w *ecs.World) component.CameraModeKind {
	if m, ok := singleton(w, component.CameraModeComponent.Kind()); ok {
		return m.Mode
	}
	return component.CameraModePlayer
}

func mainCamera(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.MainCameraTagComponent.Kind())
}

// globalOf returns the world pose of e, falling back to its local transform
// before the transform system has run.
func globalOf(w *ecs.World, e ecs.Entity) component.Transform {
	if g, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
		return g.Transform
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return *t
	}
	return *component.NewTransform(mgl32.Vec3{})
}

func parentOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return 0, false
	}
	parent := ecs.Entity(p.Entity)
	if !ecs.IsAlive(w, parent) {
		return 0, false
	}
	return parent, true
}

// isWithin reports whether e is root or one of its descendants.
func isWithin(w *ecs.World, e, root ecs.Entity) bool {
	for i := 0; i < maxParentDepth; i++ {
		if e == root {
			return true
		}
		p, ok := parentOf(w, e)
		if !ok {
			return false
		}
		e = p
	}
	return false
}

func requestSound(w *ecs.World, req component.SoundRequest) {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.SoundRequestComponent.Kind(), &req)
}

func playEffect(w *ecs.World, clip string, volume float64) {
	requestSound(w, component.SoundRequest{Clip: clip, Channel: component.ChannelEffects, Volume: volume})
}

func clipDuration(w *ecs.World, clip string) float32 {
	lib, _ := singleton(w, component.ClipLibraryComponent.Kind())
	return lib.Duration(clip)
}

func cursorConfig(w *ecs.World) component.CursorConfig {
	if cfg, ok := singleton(w, component.CursorConfigComponent.Kind()); ok {
		return *cfg
	}
	return *component.DefaultCursorConfig()
}

func despawnPellets(w *ecs.World) {
	ecs.ForEach(w, component.PelletComponent.Kind(), func(e ecs.Entity, _ *component.Pellet) {
		ecs.DestroyEntity(w, e)
	})
}
