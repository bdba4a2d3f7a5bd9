package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
)

func TestTransformSystemParentChain(t *testing.T) {
	w := ecs.NewWorld()
	parent := ecs.CreateEntity(w)
	_ = ecs.Add(w, parent, component.TransformComponent.Kind(), component.NewTransform(mgl32.Vec3{1, 2, 3}))
	child := ecs.CreateEntity(w)
	_ = ecs.Add(w, child, component.TransformComponent.Kind(), component.NewTransform(mgl32.Vec3{0, 1, 0}))
	_ = ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
	grandchild := ecs.CreateEntity(w)
	_ = ecs.Add(w, grandchild, component.TransformComponent.Kind(), component.NewTransform(mgl32.Vec3{0, 0, -1}))
	_ = ecs.Add(w, grandchild, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(child)})

	NewTransformSystem().Update(w)

	tests := []struct {
		name string
		e    ecs.Entity
		want mgl32.Vec3
	}{
		{"parent", parent, mgl32.Vec3{1, 2, 3}},
		{"child", child, mgl32.Vec3{1, 3, 3}},
		{"grandchild", grandchild, mgl32.Vec3{1, 3, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, ok := ecs.Get(w, tc.e, component.GlobalTransformComponent.Kind())
			if !ok {
				t.Fatalf("no global transform")
			}
			if !approxVec(g.Translation, tc.want) {
				t.Fatalf("got %v want %v", g.Translation, tc.want)
			}
		})
	}

	ecs.DestroyEntity(w, parent)
	NewTransformSystem().Update(w)
	g, _ := ecs.Get(w, child, component.GlobalTransformComponent.Kind())
	if !approxVec(g.Translation, mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("orphaned child should fall back to its local pose, got %v", g.Translation)
	}
}

func TestTransformSystemRotatedParent(t *testing.T) {
	w := ecs.NewWorld()
	parent := ecs.CreateEntity(w)
	_ = ecs.Add(w, parent, component.TransformComponent.Kind(), component.NewTransformYaw(mgl32.Vec3{}, mgl32.DegToRad(90)))
	child := ecs.CreateEntity(w)
	_ = ecs.Add(w, child, component.TransformComponent.Kind(), component.NewTransform(mgl32.Vec3{0, 0, -1}))
	_ = ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})

	NewTransformSystem().Update(w)

	g, _ := ecs.Get(w, child, component.GlobalTransformComponent.Kind())
	// Yawing left turns -Z toward -X.
	if !approxVec(g.Translation, mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("got %v", g.Translation)
	}
}
