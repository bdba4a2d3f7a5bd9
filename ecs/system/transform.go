package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

// TransformSystem recomputes GlobalTransform for every entity from its local
// Transform and Parent chain. A dead parent detaches the child.
type TransformSystem struct{}

func NewTransformSystem() *TransformSystem {
	return &TransformSystem{}
}

func (s *TransformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	resolved := make(map[ecs.Entity]component.Transform)

	var resolve func(e ecs.Entity, depth int) component.Transform
	resolve = func(e ecs.Entity, depth int) component.Transform {
		if g, ok := resolved[e]; ok {
			return g
		}
		local, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return globalOf(w, e)
		}
		g := *local
		if parent, ok := parentOf(w, e); ok && depth < maxParentDepth {
			g = resolve(parent, depth+1).Mul(*local)
		}
		resolved[e] = g
		return g
	}

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Transform) {
		g := resolve(e, 0)
		if gt, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			gt.Transform = g
			return
		}
		_ = ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Transform: g})
	})
}
