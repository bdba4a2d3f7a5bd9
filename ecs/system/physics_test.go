package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/ecs/entity"
)

func physicsWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := newTestWorld(t)
	spawnBox(t, w, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{10, 0.5, 10}, component.LayerSurface)
	return w
}

func TestPelletSettlesOnFloor(t *testing.T) {
	w := physicsWorld(t)
	e, err := entity.SpawnPellet(w, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{}, 0.5)
	if err != nil {
		t.Fatalf("spawn pellet: %v", err)
	}
	ps := NewPhysicsSystem()

	run(w, 300, NewSceneSystem(), ps)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !approx(tr.Translation.Y(), 0.2) {
		t.Fatalf("pellet rests at %v", tr.Translation)
	}
	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	if rb.Velocity.Y() != 0 {
		t.Fatalf("pellet still bouncing %v", rb.Velocity)
	}
}

func TestPelletStoppedByWall(t *testing.T) {
	w := physicsWorld(t)
	spawnBox(t, w, mgl32.Vec3{2, 1, 0}, mgl32.Vec3{0.1, 1, 5}, component.LayerSolid)
	// A lintel hangs too high to get a footprint.
	spawnBox(t, w, mgl32.Vec3{1, 2.5, 0}, mgl32.Vec3{0.1, 0.5, 5}, component.LayerSolid)
	e, _ := entity.SpawnPellet(w, mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{3, 0, 0}, 0.5)
	ps := NewPhysicsSystem()

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	var farthest float32
	for i := 0; i < 180; i++ {
		run(w, 1, NewSceneSystem(), ps)
		farthest = max(farthest, tr.Translation.X())
	}
	if farthest <= 1.5 || farthest >= 1.9 {
		t.Fatalf("pellet should pass under the lintel and stop at the wall, reached x=%v", farthest)
	}
	if len(ps.statics) != 1 {
		t.Fatalf("want one footprint, got %d", len(ps.statics))
	}
}

func TestPhysicsDropsDeadBodies(t *testing.T) {
	w := physicsWorld(t)
	e, _ := entity.SpawnPellet(w, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, 0)
	ps := NewPhysicsSystem()
	run(w, 1, NewSceneSystem(), ps)
	if len(ps.bodies) != 1 {
		t.Fatalf("bodies %d", len(ps.bodies))
	}

	ecs.DestroyEntity(w, e)
	run(w, 1, NewSceneSystem(), ps)
	if len(ps.bodies) != 0 {
		t.Fatalf("dead pellet kept its body")
	}

	ps.Reset()
	if len(ps.statics) != 0 || ps.Space() == nil {
		t.Fatalf("reset should leave an empty space")
	}
}

func TestPelletDespawnsBelowWorld(t *testing.T) {
	w := newTestWorld(t)
	low, _ := entity.SpawnPellet(w, mgl32.Vec3{0, -11, 0}, mgl32.Vec3{}, 0)
	keep, _ := entity.SpawnPellet(w, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, 1)
	m, _ := ecs.Get(w, keep, component.MeshComponent.Kind())
	p, _ := ecs.Get(w, keep, component.PelletComponent.Kind())
	p.Value = 0.5

	NewPelletSystem().Update(w)

	if ecs.IsAlive(w, low) {
		t.Fatalf("fallen pellet survived")
	}
	if m.Color != component.PelletColor(0.5) {
		t.Fatalf("color not refreshed: %v", m.Color)
	}
}
