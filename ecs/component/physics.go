package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// RigidBody is a dynamic body. Horizontal motion is owned by the chipmunk
// space; Velocity[1] is integrated by the physics system against the scene.
type RigidBody struct {
	Mass        float32
	Velocity    mgl32.Vec3
	Restitution float32
	Friction    float32

	Body  *cp.Body
	Shape *cp.Shape
}

var RigidBodyComponent = NewComponent[RigidBody]()
