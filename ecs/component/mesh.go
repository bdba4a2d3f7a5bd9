package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

type MeshKind int

const (
	MeshBox MeshKind = iota
	MeshSphere
	MeshOctahedron
	MeshLine
)

// Mesh is what the wireframe renderer draws for an entity.
type Mesh struct {
	Kind        MeshKind
	HalfExtents mgl32.Vec3
	Radius      float32
	// LineEnd is the local end point of a MeshLine; the start is the origin.
	LineEnd mgl32.Vec3
	Color   color.NRGBA
	Hidden  bool
}

var MeshComponent = NewComponent[Mesh]()

type Outline struct {
	Visible bool
	Color   color.NRGBA
	Width   float32
}

var OutlineComponent = NewComponent[Outline]()
