package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

const (
	switchCooldown = 1
	switchVolume   = 0.4
)

// SwitchSystem turns clicks on enabled switches into SwitchEvent requests.
type SwitchSystem struct{}

func NewSwitchSystem() *SwitchSystem {
	return &SwitchSystem{}
}

func (s *SwitchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cfg := cursorConfig(w)
	ecs.ForEach2(w, component.SwitchComponent.Kind(), component.CursorInteractionComponent.Kind(), func(e ecs.Entity, sw *component.Switch, ci *component.CursorInteraction) {
		if ci.State == component.InteractionNone {
			return
		}
		if sw.State != component.SwitchEnabled {
			if o, ok := ecs.Get(w, e, component.OutlineComponent.Kind()); ok {
				o.Color = cfg.DisabledColor
			}
			return
		}
		if ci.State != component.InteractionClicked {
			return
		}

		playEffect(w, sw.Sound, switchVolume)
		if it, ok := ecs.Get(w, e, component.InteractionTimeComponent.Kind()); ok {
			cooldown := sw.Cooldown
			if cooldown <= 0 {
				cooldown = switchCooldown
			}
			it.Timer.Set(cooldown)
		}
		ev := ecs.CreateEntity(w)
		_ = ecs.Add(w, ev, component.SwitchEventComponent.Kind(), &component.SwitchEvent{Target: sw.Target, Source: uint64(e)})
	})
}

// switchEventsFor returns the entities targeted by this frame's switch
// events that carry kind.
func switchEventsFor[T any](w *ecs.World, kind component.ComponentKind[T]) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.SwitchEventComponent.Kind(), func(_ ecs.Entity, ev *component.SwitchEvent) {
		target := ecs.Entity(ev.Target)
		if ecs.IsAlive(w, target) && ecs.Has(w, target, kind) {
			out = append(out, target)
		}
	})
	return out
}
