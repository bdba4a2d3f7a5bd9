package spatial

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

const leafSize = 2

// Item is one entry of the scene: an id with bounds, and an optional sphere
// used for the exact ray test.
type Item struct {
	ID     uint64
	Bounds AABB
	Sphere bool
	Center mgl32.Vec3
	Radius float32
}

type Hit struct {
	ID       uint64
	Distance float32
	Point    mgl32.Vec3
}

type bvhNode struct {
	bounds AABB
	left   int32
	right  int32
	start  int32
	count  int32
}

func (n bvhNode) leaf() bool {
	return n.count > 0
}

// BVH is an immutable bounding volume hierarchy. The zero value and a nil
// *BVH are both empty.
type BVH struct {
	nodes []bvhNode
	items []Item
}

func Build(items []Item) *BVH {
	b := &BVH{items: append([]Item(nil), items...)}
	if len(b.items) == 0 {
		return b
	}
	b.nodes = make([]bvhNode, 0, 2*len(b.items))
	b.build(0, len(b.items))
	return b
}

func (b *BVH) build(start, end int) int32 {
	bounds := Empty()
	centroids := Empty()
	for _, it := range b.items[start:end] {
		bounds = bounds.Union(it.Bounds)
		centroids = centroids.Grow(it.Bounds.Center())
	}

	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1})

	count := end - start
	if count <= leafSize {
		b.nodes[idx].start = int32(start)
		b.nodes[idx].count = int32(count)
		return idx
	}

	axis := centroids.LongestAxis()
	span := b.items[start:end]
	sort.Slice(span, func(i, j int) bool {
		return span[i].Bounds.Center()[axis] < span[j].Bounds.Center()[axis]
	})
	mid := start + count/2

	left := b.build(start, mid)
	right := b.build(mid, end)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

func (b *BVH) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Bounds returns the root bounds, or an invalid box when empty.
func (b *BVH) Bounds() AABB {
	if b == nil || len(b.nodes) == 0 {
		return Empty()
	}
	return b.nodes[0].bounds
}

// Raycast returns the nearest item hit within maxDist. Items rejected by
// filter are skipped; a nil filter accepts everything.
func (b *BVH) Raycast(ray Ray, maxDist float32, filter func(id uint64) bool) (Hit, bool) {
	if b == nil || len(b.nodes) == 0 || ray.degenerate() {
		return Hit{}, false
	}

	best := Hit{Distance: maxDist}
	found := false
	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		n := b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		t, ok := ray.IntersectAABB(n.bounds)
		if !ok || t > best.Distance {
			continue
		}
		if !n.leaf() {
			stack = append(stack, n.left, n.right)
			continue
		}
		for _, it := range b.items[n.start : n.start+n.count] {
			if filter != nil && !filter(it.ID) {
				continue
			}
			var d float32
			var hit bool
			if it.Sphere {
				d, hit = ray.IntersectSphere(it.Center, it.Radius)
			} else {
				d, hit = ray.IntersectAABB(it.Bounds)
			}
			if hit && d <= best.Distance {
				best = Hit{ID: it.ID, Distance: d}
				found = true
			}
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// Overlap returns the ids of every item whose bounds intersect box.
func (b *BVH) Overlap(box AABB) []uint64 {
	if b == nil || len(b.nodes) == 0 {
		return nil
	}
	var out []uint64
	stack := []int32{0}
	for len(stack) > 0 {
		n := b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.bounds.Overlaps(box) {
			continue
		}
		if !n.leaf() {
			stack = append(stack, n.left, n.right)
			continue
		}
		for _, it := range b.items[n.start : n.start+n.count] {
			if it.Bounds.Overlaps(box) {
				out = append(out, it.ID)
			}
		}
	}
	return out
}
