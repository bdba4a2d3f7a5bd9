package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

// CursorSystem resolves what the player points at. In player mode the ray
// follows the view; otherwise it goes through the mouse cursor.
type CursorSystem struct{}

func NewCursorSystem() *CursorSystem {
	return &CursorSystem{}
}

func (s *CursorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InteractionTimeComponent.Kind(), func(_ ecs.Entity, it *component.InteractionTime) {
		it.Timer.Tick(dt)
	})
	ecs.ForEach(w, component.CursorInteractionComponent.Kind(), func(_ ecs.Entity, ci *component.CursorInteraction) {
		ci.State = component.InteractionNone
	})
	ecs.ForEach(w, component.OutlineComponent.Kind(), func(_ ecs.Entity, o *component.Outline) {
		o.Visible = false
	})

	cursor, ok := singleton(w, component.CursorComponent.Kind())
	if !ok {
		return
	}
	*cursor = component.Cursor{}

	camE, ok := mainCamera(w)
	if !ok {
		return
	}
	camT := globalOf(w, camE)
	cfg := cursorConfig(w)
	in := currentInput(w)

	ray := spatial.NewRay(camT.Translation, camT.Forward())
	if currentCameraMode(w) != component.CameraModePlayer {
		if cam, ok := ecs.Get(w, camE, component.CameraComponent.Kind()); ok {
			ray = screenRay(camT, *cam, in.CursorX, in.CursorY, in.ScreenW, in.ScreenH)
		}
	}

	hit, ok := raycastScene(w, ray, cfg.Range, func(e ecs.Entity) bool {
		return isWithin(w, e, camE) || ecs.Has(w, e, component.LaserTagComponent.Kind())
	})
	if !ok {
		return
	}
	*cursor = component.Cursor{Hit: true, Entity: hit.ID, Point: hit.Point, Distance: hit.Distance}

	target := ecs.Entity(hit.ID)
	ci, ok := ecs.Get(w, target, component.CursorInteractionComponent.Kind())
	if !ok {
		parent, hasParent := parentOf(w, target)
		if !hasParent {
			return
		}
		if ci, ok = ecs.Get(w, parent, component.CursorInteractionComponent.Kind()); !ok {
			return
		}
		target = parent
	}

	ready := true
	if it, ok := ecs.Get(w, target, component.InteractionTimeComponent.Kind()); ok {
		ready = it.Timer.Finished()
	}
	ci.State = component.InteractionHovered
	if in.LeftJustPressed && ready {
		ci.State = component.InteractionClicked
	}

	if o, ok := ecs.Get(w, target, component.OutlineComponent.Kind()); ok {
		o.Visible = true
		o.Color = cfg.HoverColor
		if ci.State == component.InteractionClicked {
			o.Color = cfg.ClickedColor
		}
	}
}
