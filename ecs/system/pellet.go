package system

import (
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

// pelletKillY is the height below which a pellet has fallen out of the world.
const pelletKillY = -10

// PelletSystem keeps pellet colors in step with their value and despawns
// pellets that fell out of the room.
type PelletSystem struct{}

func NewPelletSystem() *PelletSystem {
	return &PelletSystem{}
}

func (s *PelletSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.PelletComponent.Kind(), component.MeshComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pellet, m *component.Mesh, t *component.Transform) {
		if t.Translation[1] < pelletKillY {
			ecs.DestroyEntity(w, e)
			return
		}
		m.Color = component.PelletColor(p.Value)
	})
}
