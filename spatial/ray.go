package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay normalizes dir. A zero direction yields a ray that never hits.
func NewRay(origin, dir mgl32.Vec3) Ray {
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: origin, Dir: dir}
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

func (r Ray) degenerate() bool {
	return r.Dir[0] == 0 && r.Dir[1] == 0 && r.Dir[2] == 0
}

// IntersectAABB uses the slab method. A ray starting inside b hits at 0.
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	if r.degenerate() {
		return 0, false
	}
	tmin := float32(0)
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmax < tmin {
			return 0, false
		}
	}
	return tmin, true
}

func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	if r.degenerate() || radius <= 0 {
		return 0, false
	}
	f := r.Origin.Sub(center)
	b := f.Dot(r.Dir)
	c := f.Dot(f) - radius*radius
	if c <= 0 {
		return 0, true
	}
	if b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return -b - float32(math.Sqrt(float64(disc))), true
}
