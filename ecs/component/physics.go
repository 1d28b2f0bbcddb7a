package component

import "github.com/jakecoffman/cp"

type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyKinematic
)

// PhysicsBody stores Chipmunk runtime data and collider configuration.
// Sizes are in pixels; the physics system converts them.
type PhysicsBody struct {
	Body          *cp.Body
	Shape         *cp.Shape
	Kind          BodyKind
	Width         float64
	Height        float64
	Radius        float64
	Mass          float64
	Friction      float64
	Elasticity    float64
	FixedRotation bool
	// VelocityX/VelocityY seed a body's velocity in pixels per second when
	// it is created. Kinematic bodies keep it.
	VelocityX float64
	VelocityY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
