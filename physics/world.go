// Package physics wraps a Chipmunk space with the unit conversion between
// screen pixels and physics metres used by the rest of the game.
package physics

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileworld/tileset"
)

const (
	DefaultPixelsPerMeter = 32.0
	DefaultGravity        = 30.0
	defaultIterations     = 20
)

type Settings struct {
	PixelsPerMeter float64
	// Gravity is the downward acceleration in m/s². Negative values pull up.
	Gravity    float64
	Iterations uint
}

// Material describes a dynamic body's surface and mass.
type Material struct {
	Mass       float64
	Friction   float64
	Elasticity float64
	// FixedRotation stops the body from spinning.
	FixedRotation bool
}

// World owns a Chipmunk space. Positions passed in and out are in pixels
// unless the method says otherwise.
type World struct {
	space   *cp.Space
	ppm     float64
	statics []*cp.Body
	dynamic map[*cp.Body][]*cp.Shape
}

func New(s Settings) *World {
	if s.PixelsPerMeter <= 0 {
		s.PixelsPerMeter = DefaultPixelsPerMeter
	}
	if s.Iterations == 0 {
		s.Iterations = defaultIterations
	}

	space := cp.NewSpace()
	space.Iterations = s.Iterations
	space.SetGravity(cp.Vector{X: 0, Y: s.Gravity})

	return &World{
		space:   space,
		ppm:     s.PixelsPerMeter,
		dynamic: make(map[*cp.Body][]*cp.Shape),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) PixelsPerMeter() float64 {
	return w.ppm
}

// ToPhysics converts a graphics-space point or extent to metres.
func (w *World) ToPhysics(v tileset.Vec) tileset.Vec {
	return tileset.Vec{X: v.X / w.ppm, Y: v.Y / w.ppm}
}

// ToGraphics converts metres back to pixels.
func (w *World) ToGraphics(v tileset.Vec) tileset.Vec {
	return tileset.Vec{X: v.X * w.ppm, Y: v.Y * w.ppm}
}

func (w *World) toVector(px tileset.Vec) cp.Vector {
	m := w.ToPhysics(px)
	return cp.Vector{X: m.X, Y: m.Y}
}

// AddStaticBox creates a static body at center with a box of the given half
// extents. Both arguments are already in metres.
func (w *World) AddStaticBox(center, halfExtents tileset.Vec, m tileset.Material) {
	if w == nil || w.space == nil {
		return
	}
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: center.X, Y: center.Y})
	shape := cp.NewBox(body, halfExtents.X*2, halfExtents.Y*2, 0)
	shape.SetDensity(m.Density)
	shape.SetFriction(m.Friction)
	shape.SetElasticity(m.Restitution)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.statics = append(w.statics, body)
}

// StaticBodies returns the number of static bodies added through AddStaticBox.
func (w *World) StaticBodies() int {
	if w == nil {
		return 0
	}
	return len(w.statics)
}

// AddCircle adds a dynamic circle centred at center with radius, both in pixels.
func (w *World) AddCircle(center tileset.Vec, radius float64, m Material) (*cp.Body, *cp.Shape) {
	r := radius / w.ppm
	moment := cp.MomentForCircle(m.Mass, 0, r, cp.Vector{})
	if m.FixedRotation {
		moment = math.Inf(1)
	}
	body := cp.NewBody(m.Mass, moment)
	body.SetPosition(w.toVector(center))
	shape := cp.NewCircle(body, r, cp.Vector{})
	return body, w.addDynamic(body, shape, m)
}

// AddBox adds a dynamic box centred at center with size, both in pixels.
func (w *World) AddBox(center, size tileset.Vec, m Material) (*cp.Body, *cp.Shape) {
	sz := w.ToPhysics(size)
	moment := cp.MomentForBox(m.Mass, sz.X, sz.Y)
	if m.FixedRotation {
		moment = math.Inf(1)
	}
	body := cp.NewBody(m.Mass, moment)
	body.SetPosition(w.toVector(center))
	shape := cp.NewBox(body, sz.X, sz.Y, 0)
	return body, w.addDynamic(body, shape, m)
}

// AddKinematicBox adds a box that ignores gravity and collisions' impulses;
// obstacles are moved by setting their velocity.
func (w *World) AddKinematicBox(center, size tileset.Vec, friction float64) (*cp.Body, *cp.Shape) {
	sz := w.ToPhysics(size)
	body := cp.NewKinematicBody()
	body.SetPosition(w.toVector(center))
	shape := cp.NewBox(body, sz.X, sz.Y, 0)
	shape.SetFriction(friction)
	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.dynamic[body] = []*cp.Shape{shape}
	return body, shape
}

func (w *World) addDynamic(body *cp.Body, shape *cp.Shape, m Material) *cp.Shape {
	shape.SetFriction(m.Friction)
	shape.SetElasticity(m.Elasticity)
	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.dynamic[body] = []*cp.Shape{shape}
	return shape
}

// RemoveBody removes a body added with AddCircle, AddBox or AddKinematicBox.
func (w *World) RemoveBody(body *cp.Body) {
	if w == nil || body == nil {
		return
	}
	shapes, ok := w.dynamic[body]
	if !ok {
		return
	}
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(body)
	delete(w.dynamic, body)
}

// Position returns a body's centre in pixels.
func (w *World) Position(body *cp.Body) tileset.Vec {
	p := body.Position()
	return w.ToGraphics(tileset.Vec{X: p.X, Y: p.Y})
}

// SetPosition teleports a body to a pixel position and clears its velocity.
func (w *World) SetPosition(body *cp.Body, px tileset.Vec) {
	body.SetPosition(w.toVector(px))
	body.SetVelocityVector(cp.Vector{})
	body.SetAngularVelocity(0)
	if w.space != nil {
		w.space.ReindexShapesForBody(body)
	}
}

// Gravity returns the vertical gravity in m/s².
func (w *World) Gravity() float64 {
	return w.space.Gravity().Y
}

func (w *World) SetGravity(y float64) {
	w.space.SetGravity(cp.Vector{X: 0, Y: y})
	log.Debug("gravity changed", "y", y)
}

// AdjustGravity adds delta to the vertical gravity.
func (w *World) AdjustGravity(delta float64) {
	w.SetGravity(w.Gravity() + delta)
}

// FlipGravity reverses the direction of gravity.
func (w *World) FlipGravity() {
	w.SetGravity(-w.Gravity())
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// Grounded reports whether body is resting on something in the direction of
// gravity. Zero gravity never grounds.
func (w *World) Grounded(body *cp.Body) bool {
	if w == nil || body == nil {
		return false
	}
	g := w.Gravity()
	if g == 0 {
		return false
	}
	down := math.Copysign(1, g)
	grounded := false
	body.EachArbiter(func(arb *cp.Arbiter) {
		// The normal points away from body toward what it touches.
		if arb.Normal().Y*down > 0.5 {
			grounded = true
		}
	})
	return grounded
}

// SetGravityScale makes body feel scale times the world gravity.
func SetGravityScale(body *cp.Body, scale float64) {
	if body == nil || scale == 1 {
		return
	}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
	})
}
