package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

// SceneSystem rebuilds the scene BVH from every enabled collider.
type SceneSystem struct {
	items []spatial.Item
}

func NewSceneSystem() *SceneSystem {
	return &SceneSystem{}
}

func (s *SceneSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	scene, ok := singleton(w, component.SceneBVHComponent.Kind())
	if !ok {
		return
	}
	s.items = s.items[:0]
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, g *component.GlobalTransform) {
		if c.Disabled {
			return
		}
		s.items = append(s.items, colliderItem(uint64(e), *c, g.Transform))
	})
	scene.Tree = spatial.Build(s.items)
}

func maxScale(t component.Transform) float32 {
	return max(t.Scale[0], t.Scale[1], t.Scale[2])
}

// colliderItem converts a collider at a world pose into a BVH item.
func colliderItem(id uint64, c component.Collider, t component.Transform) spatial.Item {
	center := t.Translation.Add(t.Rotation.Rotate(c.Offset))
	if c.Shape == component.ShapeSphere {
		r := c.Radius * maxScale(t)
		return spatial.Item{
			ID:     id,
			Bounds: spatial.FromCenter(center, mgl32.Vec3{r, r, r}),
			Sphere: true,
			Center: center,
			Radius: r,
		}
	}
	half := c.LocalHalfExtents()
	half = mgl32.Vec3{half[0] * t.Scale[0], half[1] * t.Scale[1], half[2] * t.Scale[2]}
	return spatial.Item{ID: id, Bounds: spatial.Rotated(half, t.Rotation, center)}
}

// colliderBounds is the world AABB of a collider.
func colliderBounds(c component.Collider, t component.Transform) spatial.AABB {
	return colliderItem(0, c, t).Bounds
}

// raycastScene casts against the BVH built this frame. skip rejects
// entities; a nil skip accepts everything.
func raycastScene(w *ecs.World, ray spatial.Ray, maxDist float32, skip func(ecs.Entity) bool) (spatial.Hit, bool) {
	scene, ok := singleton(w, component.SceneBVHComponent.Kind())
	if !ok || scene.Tree == nil {
		return spatial.Hit{}, false
	}
	return scene.Tree.Raycast(ray, maxDist, func(id uint64) bool {
		e := ecs.Entity(id)
		if !ecs.IsAlive(w, e) {
			return false
		}
		return skip == nil || !skip(e)
	})
}

func isDynamic(w *ecs.World, e ecs.Entity) bool {
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	return ok && c.Layer == component.LayerDynamic
}
