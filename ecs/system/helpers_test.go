package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/ecs/entity"
)

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	if _, err := entity.SpawnSingletons(w, nil); err != nil {
		t.Fatalf("spawn singletons: %v", err)
	}
	return w
}

func setInput(t *testing.T, w *ecs.World, in component.Input) {
	t.Helper()
	cur, ok := singleton(w, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("no input singleton")
	}
	*cur = in
}

func spawnCamera(t *testing.T, w *ecs.World, pos, lookAt mgl32.Vec3) ecs.Entity {
	t.Helper()
	e, err := entity.SpawnCamera(w, pos, lookAt)
	if err != nil {
		t.Fatalf("spawn camera: %v", err)
	}
	return e
}

// spawnBox adds a static box collider already placed in the world.
func spawnBox(t *testing.T, w *ecs.World, pos, half mgl32.Vec3, layer component.ColliderLayer) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &component.GlobalTransform{Transform: *tr}); err != nil {
		t.Fatalf("add global transform: %v", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Shape: component.ShapeBox, HalfExtents: half, Layer: layer}); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	return e
}

func run(w *ecs.World, frames int, systems ...ecs.System) {
	for i := 0; i < frames; i++ {
		for _, s := range systems {
			s.Update(w)
		}
	}
}

func soundRequests(w *ecs.World) []component.SoundRequest {
	var out []component.SoundRequest
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(_ ecs.Entity, r *component.SoundRequest) {
		out = append(out, *r)
	})
	return out
}

func hasClip(reqs []component.SoundRequest, clip string) bool {
	for _, r := range reqs {
		if r.Clip == clip {
			return true
		}
	}
	return false
}

func count[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func approxVec(a, b mgl32.Vec3) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}
