package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

// EventCleanupSystem runs last and destroys one-shot event entities so each
// is seen for exactly one frame.
type EventCleanupSystem struct{}

func NewEventCleanupSystem() *EventCleanupSystem {
	return &EventCleanupSystem{}
}

func (s *EventCleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	destroyAll(w, component.SwitchEventComponent.Kind())
	destroyAll(w, component.HighScoreReachedComponent.Kind())
	destroyAll(w, component.RoundFinishedComponent.Kind())
}

func destroyAll[T any](w *ecs.World, kind component.ComponentKind[T]) {
	for _, e := range w.Query(kind) {
		ecs.DestroyEntity(w, e)
	}
}
