package component

import "github.com/go-gl/mathgl/mgl32"

type ColliderShape int

const (
	ShapeBox ColliderShape = iota
	ShapeSphere
	ShapeConvex
)

// ColliderLayer decides which queries see a collider.
type ColliderLayer int

const (
	// LayerSolid blocks rays and gets a footprint in the floor-plane
	// simulation: walls, doors, furniture.
	LayerSolid ColliderLayer = iota
	// LayerSurface blocks rays only: floors and ceilings.
	LayerSurface
	// LayerDynamic belongs to simulated bodies such as pellets.
	LayerDynamic
)

type Collider struct {
	Shape       ColliderShape
	HalfExtents mgl32.Vec3
	Radius      float32
	Points      []mgl32.Vec3
	Offset      mgl32.Vec3
	Layer       ColliderLayer
	Disabled    bool
}

var ColliderComponent = NewComponent[Collider]()

// LocalHalfExtents returns the half size of the collider's local bounds.
func (c Collider) LocalHalfExtents() mgl32.Vec3 {
	switch c.Shape {
	case ShapeSphere:
		return mgl32.Vec3{c.Radius, c.Radius, c.Radius}
	case ShapeConvex:
		var half mgl32.Vec3
		for _, p := range c.Points {
			for i := 0; i < 3; i++ {
				v := p[i]
				if v < 0 {
					v = -v
				}
				half[i] = max(half[i], v)
			}
		}
		return half
	default:
		return c.HalfExtents
	}
}

// OctahedronPoints returns the six vertices of an octahedron centered on the
// origin.
func OctahedronPoints(halfHeight, halfWidth float32) []mgl32.Vec3 {
	return []mgl32.Vec3{
		{0, halfHeight, 0},
		{0, -halfHeight, 0},
		{halfWidth, 0, 0},
		{-halfWidth, 0, 0},
		{0, 0, halfWidth},
		{0, 0, -halfWidth},
	}
}
