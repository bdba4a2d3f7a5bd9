package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

const pickupVolume = 0.5

// BlasterSystem handles picking blasters up and firing the held one. Firing
// nudges the value of the pellet under the crosshair every frame.
type BlasterSystem struct{}

func NewBlasterSystem() *BlasterSystem {
	return &BlasterSystem{}
}

func (s *BlasterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camE, ok := mainCamera(w)
	if !ok {
		return
	}
	in := currentInput(w)

	holding := false
	ecs.ForEach(w, component.PolarityBlasterComponent.Kind(), func(_ ecs.Entity, b *component.PolarityBlaster) {
		holding = holding || b.Held
	})

	ecs.ForEach2(w, component.PolarityBlasterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PolarityBlaster, t *component.Transform) {
		if !b.Held {
			ci, ok := ecs.Get(w, e, component.CursorInteractionComponent.Kind())
			if holding || !ok || ci.State != component.InteractionClicked || b.State != component.BlasterEnabled {
				return
			}
			pickUp(w, e, camE, b, t)
			holding = true
			return
		}
		fire(w, camE, b, in)
	})
}

func pickUp(w *ecs.World, e, cam ecs.Entity, b *component.PolarityBlaster, t *component.Transform) {
	b.Held = true
	_ = ecs.Add(w, e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(cam)})
	t.Translation = b.HoldOffset
	t.Rotation = mgl32.QuatIdent()
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		c.Disabled = true
	}
	playEffect(w, "pickup", pickupVolume)
}

func fire(w *ecs.World, cam ecs.Entity, b *component.PolarityBlaster, in component.Input) {
	b.Firing = 0
	switch {
	case in.LeftPressed:
		b.Firing = 1
	case in.RightPressed:
		b.Firing = -1
	}

	laser, hasLaser := ecs.Entity(b.Laser), ecs.IsAlive(w, ecs.Entity(b.Laser))
	var mesh *component.Mesh
	if hasLaser {
		mesh, _ = ecs.Get(w, laser, component.MeshComponent.Kind())
	}
	if mesh != nil {
		mesh.Hidden = b.Firing == 0
	}
	if b.Firing == 0 {
		return
	}

	camT := globalOf(w, cam)
	ray := spatial.NewRay(camT.Translation, camT.Forward())
	end := ray.At(b.Range)
	if hit, ok := raycastScene(w, ray, b.Range, func(e ecs.Entity) bool { return isWithin(w, e, cam) }); ok {
		end = hit.Point
		if p, ok := ecs.Get(w, ecs.Entity(hit.ID), component.PelletComponent.Kind()); ok {
			p.Value = common.Clamp01(p.Value + b.Firing*b.Change)
		}
	}

	if mesh == nil {
		return
	}
	muzzle := camT.Mul(component.Transform{Translation: b.HoldOffset, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}).Translation
	if lt, ok := ecs.Get(w, laser, component.TransformComponent.Kind()); ok {
		lt.Translation = muzzle
		lt.Rotation = mgl32.QuatIdent()
		if g, ok := ecs.Get(w, laser, component.GlobalTransformComponent.Kind()); ok {
			g.Transform = *lt
		}
	}
	mesh.LineEnd = end.Sub(muzzle)
	mesh.Color = b.PositiveColor
	if b.Firing < 0 {
		mesh.Color = b.NegativeColor
	}
}
