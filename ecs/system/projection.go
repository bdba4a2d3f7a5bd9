package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

// viewMatrix is the inverse of the camera's world pose.
func viewMatrix(t component.Transform) mgl32.Mat4 {
	p := t.Translation
	return t.Rotation.Inverse().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

func viewProjection(t component.Transform, cam component.Camera, width, height float32) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	return cam.Projection(aspect).Mul4(viewMatrix(t))
}

// screenRay unprojects a screen position into a world ray from the camera.
func screenRay(t component.Transform, cam component.Camera, x, y, width, height float32) spatial.Ray {
	if width <= 0 || height <= 0 {
		return spatial.NewRay(t.Translation, t.Forward())
	}
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height
	inv := viewProjection(t, cam, width, height).Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	if near[3] == 0 || far[3] == 0 {
		return spatial.NewRay(t.Translation, t.Forward())
	}
	n := near.Vec3().Mul(1 / near[3])
	f := far.Vec3().Mul(1 / far[3])
	return spatial.NewRay(n, f.Sub(n))
}

// project maps a world point to screen space. ok is false behind the camera.
func project(vp mgl32.Mat4, p mgl32.Vec3, width, height float32) (mgl32.Vec2, bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-4 {
		return mgl32.Vec2{}, false
	}
	return clipToScreen(clip, width, height), true
}

// projectSegment clips a world segment against the near plane and maps it to
// screen space. ok is false when the whole segment is behind the camera.
func projectSegment(vp mgl32.Mat4, a, b mgl32.Vec3, width, height float32) (mgl32.Vec2, mgl32.Vec2, bool) {
	const nearW = 1e-3
	ca := vp.Mul4x1(a.Vec4(1))
	cb := vp.Mul4x1(b.Vec4(1))
	if ca[3] < nearW && cb[3] < nearW {
		return mgl32.Vec2{}, mgl32.Vec2{}, false
	}
	if ca[3] < nearW {
		ca = ca.Add(cb.Sub(ca).Mul((nearW - ca[3]) / (cb[3] - ca[3])))
	} else if cb[3] < nearW {
		cb = cb.Add(ca.Sub(cb).Mul((nearW - cb[3]) / (ca[3] - cb[3])))
	}
	return clipToScreen(ca, width, height), clipToScreen(cb, width, height), true
}

func clipToScreen(c mgl32.Vec4, width, height float32) mgl32.Vec2 {
	ndc := c.Vec3().Mul(1 / c[3])
	return mgl32.Vec2{(ndc[0] + 1) * 0.5 * width, (1 - ndc[1]) * 0.5 * height}
}
