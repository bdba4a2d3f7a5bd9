package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

const (
	gravity = 9.81
	// footprintMaxBottom skips static boxes that hang above the pellets'
	// height range, such as lintels and door frames.
	footprintMaxBottom = 0.5
	// restSpeed is the vertical speed below which a bouncing pellet settles.
	restSpeed = 0.5
	// damping is the fraction of horizontal velocity kept after one second.
	damping = 0.8
)

// PhysicsSystem simulates pellets. Chipmunk handles the floor plane (x, z)
// against the footprints of solid colliders; height and floor bounces are
// integrated here against the scene BVH.
type PhysicsSystem struct {
	space   *cp.Space
	bodies  map[ecs.Entity]*bodyInfo
	statics map[ecs.Entity]*staticInfo
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

type staticInfo struct {
	shape *cp.Shape
	bb    cp.BB
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{}
	ps.Reset()
	return ps
}

// Reset drops every body and starts an empty space. Call it on level change.
func (ps *PhysicsSystem) Reset() {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	space.SetDamping(damping)
	ps.space = space
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
	ps.statics = make(map[ecs.Entity]*staticInfo)
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncStatics(w)
	ps.syncBodies(w)

	ps.space.Step(float64(dt))

	ps.syncTransforms(w)
}

func footprint(b spatial.AABB) cp.BB {
	return cp.BB{L: float64(b.Min[0]), B: float64(b.Min[2]), R: float64(b.Max[0]), T: float64(b.Max[2])}
}

func (ps *PhysicsSystem) syncStatics(w *ecs.World) {
	seen := make(map[ecs.Entity]bool)
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, g *component.GlobalTransform) {
		if c.Layer != component.LayerSolid || c.Disabled {
			return
		}
		bounds := colliderBounds(*c, g.Transform)
		if bounds.Min[1] > footprintMaxBottom {
			return
		}
		seen[e] = true
		bb := footprint(bounds)
		if info, ok := ps.statics[e]; ok {
			if info.bb == bb {
				return
			}
			ps.space.RemoveShape(info.shape)
			delete(ps.statics, e)
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetElasticity(0.6)
		shape.SetFriction(0.5)
		ps.space.AddShape(shape)
		ps.statics[e] = &staticInfo{shape: shape, bb: bb}
	})
	for e, info := range ps.statics {
		if !seen[e] {
			ps.space.RemoveShape(info.shape)
			delete(ps.statics, e)
		}
	}
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	ecs.ForEach3(w, component.RigidBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, c *component.Collider, t *component.Transform) {
		if _, ok := ps.bodies[e]; ok {
			return
		}
		mass := float64(rb.Mass)
		if mass <= 0 {
			mass = 1
		}
		radius := float64(c.Radius)
		if c.Shape != component.ShapeSphere || radius <= 0 {
			half := c.LocalHalfExtents()
			radius = float64(max(half[0], half[2]))
		}
		body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
		body.SetPosition(cp.Vector{X: float64(t.Translation[0]), Y: float64(t.Translation[2])})
		body.SetVelocity(float64(rb.Velocity[0]), float64(rb.Velocity[2]))
		shape := cp.NewCircle(body, radius, cp.Vector{})
		shape.SetElasticity(float64(rb.Restitution))
		shape.SetFriction(float64(rb.Friction))
		ps.space.AddBody(body)
		ps.space.AddShape(shape)

		rb.Body = body
		rb.Shape = shape
		ps.bodies[e] = &bodyInfo{body: body, shape: shape}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach3(w, component.RigidBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, c *component.Collider, t *component.Transform) {
		info, ok := ps.bodies[e]
		if !ok {
			return
		}
		pos := info.body.Position()
		vel := info.body.Velocity()
		t.Translation[0] = float32(pos.X)
		t.Translation[2] = float32(pos.Y)
		rb.Velocity[0] = float32(vel.X)
		rb.Velocity[2] = float32(vel.Y)

		ps.fall(w, e, rb, c, t)
		if g, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			g.Transform = *t
		}
	})
}

// fall integrates gravity and bounces off whatever surface is below.
func (ps *PhysicsSystem) fall(w *ecs.World, e ecs.Entity, rb *component.RigidBody, c *component.Collider, t *component.Transform) {
	radius := c.Radius
	rb.Velocity[1] -= gravity * dt
	dy := rb.Velocity[1] * dt
	y := t.Translation[1] + dy

	if rb.Velocity[1] <= 0 {
		reach := radius - dy + 0.01
		ray := spatial.NewRay(t.Translation, mgl32.Vec3{0, -1, 0})
		hit, ok := raycastScene(w, ray, reach, func(o ecs.Entity) bool {
			return o == e || isDynamic(w, o)
		})
		if ok && y-radius < hit.Point[1] {
			y = hit.Point[1] + radius
			rb.Velocity[1] = -rb.Velocity[1] * rb.Restitution
			if rb.Velocity[1] < restSpeed {
				rb.Velocity[1] = 0
			}
		}
	}
	t.Translation[1] = y
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.RigidBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.bodies, e)
	}
}
