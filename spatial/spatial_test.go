package spatial

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestRayIntersectAABB(t *testing.T) {
	box := FromCenter(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	tests := []struct {
		name     string
		ray      Ray
		hit      bool
		distance float32
	}{
		{"head_on", NewRay(mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{1, 0, 0}), true, 4},
		{"unnormalized_dir", NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -7, 0}), true, 9},
		{"inside", NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}), true, 0},
		{"pointing_away", NewRay(mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{-1, 0, 0}), false, 0},
		{"parallel_outside_slab", NewRay(mgl32.Vec3{-5, 2, 0}, mgl32.Vec3{1, 0, 0}), false, 0},
		{"zero_dir", NewRay(mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{}), false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := tc.ray.IntersectAABB(box)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && !near(d, tc.distance) {
				t.Fatalf("distance = %v, want %v", d, tc.distance)
			}
		})
	}
}

func TestRayIntersectSphere(t *testing.T) {
	center := mgl32.Vec3{0, 0, -5}
	tests := []struct {
		name     string
		origin   mgl32.Vec3
		dir      mgl32.Vec3
		hit      bool
		distance float32
	}{
		{"front", mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, true, 4},
		{"miss_side", mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 0, -1}, false, 0},
		{"behind", mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, false, 0},
		{"inside", mgl32.Vec3{0, 0, -5.5}, mgl32.Vec3{1, 0, 0}, true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := NewRay(tc.origin, tc.dir).IntersectSphere(center, 1)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && !near(d, tc.distance) {
				t.Fatalf("distance = %v, want %v", d, tc.distance)
			}
		})
	}
}

func TestRotatedBounds(t *testing.T) {
	rot := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	b := Rotated(mgl32.Vec3{2, 1, 0.5}, rot, mgl32.Vec3{10, 0, 0})
	half := b.HalfExtents()
	if !near(half[0], 0.5) || !near(half[1], 1) || !near(half[2], 2) {
		t.Fatalf("expected swapped x/z extents, got %v", half)
	}
	if c := b.Center(); !near(c[0], 10) {
		t.Fatalf("expected center x 10, got %v", c)
	}
}

func boxItem(id uint64, center mgl32.Vec3) Item {
	return Item{ID: id, Bounds: FromCenter(center, mgl32.Vec3{0.5, 0.5, 0.5})}
}

func TestBVHRaycastNearest(t *testing.T) {
	items := make([]Item, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, boxItem(uint64(i+1), mgl32.Vec3{float32(i) * 2, 0, 0}))
	}
	tree := Build(items)
	if tree.Len() != 20 {
		t.Fatalf("expected 20 items, got %d", tree.Len())
	}

	ray := NewRay(mgl32.Vec3{-10, 0, 0}, mgl32.Vec3{1, 0, 0})
	tests := []struct {
		name    string
		maxDist float32
		filter  func(uint64) bool
		wantID  uint64
		wantHit bool
	}{
		{"nearest", 100, nil, 1, true},
		{"filtered_first", 100, func(id uint64) bool { return id != 1 }, 2, true},
		{"too_short", 5, nil, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := tree.Raycast(ray, tc.maxDist, tc.filter)
			if ok != tc.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tc.wantHit)
			}
			if ok && hit.ID != tc.wantID {
				t.Fatalf("hit id = %d, want %d", hit.ID, tc.wantID)
			}
		})
	}
}

func TestBVHSphereItem(t *testing.T) {
	center := mgl32.Vec3{0, 0, -3}
	tree := Build([]Item{{
		ID:     9,
		Bounds: FromCenter(center, mgl32.Vec3{1, 1, 1}),
		Sphere: true,
		Center: center,
		Radius: 1,
	}})

	// clips the box corner but misses the sphere
	if _, ok := tree.Raycast(NewRay(mgl32.Vec3{0.9, 0.9, 0}, mgl32.Vec3{0, 0, -1}), 10, nil); ok {
		t.Fatalf("corner ray should miss the sphere")
	}
	hit, ok := tree.Raycast(NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}), 10, nil)
	if !ok || !near(hit.Distance, 2) {
		t.Fatalf("expected hit at 2, got %+v ok=%v", hit, ok)
	}
	if !near(hit.Point[2], -2) {
		t.Fatalf("expected hit point z -2, got %v", hit.Point)
	}
}

func TestBVHOverlap(t *testing.T) {
	tree := Build([]Item{
		boxItem(1, mgl32.Vec3{0, 0, 0}),
		boxItem(2, mgl32.Vec3{5, 0, 0}),
		boxItem(3, mgl32.Vec3{10, 0, 0}),
	})
	got := tree.Overlap(FromCenter(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{1, 1, 1}))
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestEmptyBVH(t *testing.T) {
	var nilTree *BVH
	for name, tree := range map[string]*BVH{"nil": nilTree, "built_empty": Build(nil)} {
		t.Run(name, func(t *testing.T) {
			if _, ok := tree.Raycast(NewRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}), 100, nil); ok {
				t.Fatalf("empty tree should never hit")
			}
			if got := tree.Overlap(FromCenter(mgl32.Vec3{}, mgl32.Vec3{100, 100, 100})); len(got) != 0 {
				t.Fatalf("empty tree overlap should be empty, got %v", got)
			}
		})
	}
}
