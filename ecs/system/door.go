package system

import (
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

// DoorSystem toggles doors named by switch events and slides their panel.
type DoorSystem struct{}

func NewDoorSystem() *DoorSystem {
	return &DoorSystem{}
}

func (s *DoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range switchEventsFor(w, component.DoorComponent.Kind()) {
		door, _ := ecs.Get(w, e, component.DoorComponent.Kind())
		next := component.DoorOpen
		if door.State == component.DoorOpen {
			next = component.DoorClosed
		}
		SetDoorState(w, door, next)
	}
}

// SetDoorState starts the panel slide toward state and switches the panel's
// collider: closed blocks, open does not.
func SetDoorState(w *ecs.World, door *component.Door, state component.DoorState) {
	door.State = state
	slider := ecs.Entity(door.Slider)
	if !ecs.IsAlive(w, slider) {
		return
	}
	if c, ok := ecs.Get(w, slider, component.ColliderComponent.Kind()); ok {
		c.Disabled = state == component.DoorOpen
	}
	t, ok := ecs.Get(w, slider, component.TransformComponent.Kind())
	if !ok {
		return
	}
	to := t.Translation
	to[1] = door.SliderY(state)
	tw, ok := ecs.Get(w, slider, component.TweenComponent.Kind())
	if !ok {
		tw = &component.Tween{}
		_ = ecs.Add(w, slider, component.TweenComponent.Kind(), tw)
	}
	tw.Retarget(t.Translation, to, door.Duration)
	tw.Ease = common.EaseSineInOut
}
