package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/physics"
	"github.com/milk9111/tileworld/tileset"
)

// PhysicsSystem creates Chipmunk bodies for PhysicsBody components, steps the
// space by a fixed dt each tick and copies positions back into transforms.
type PhysicsSystem struct {
	world  *physics.World
	dt     float64
	bodies map[ecs.Entity]*cp.Body
}

func NewPhysicsSystem(world *physics.World, tps int) *PhysicsSystem {
	if tps <= 0 {
		tps = 60
	}
	return &PhysicsSystem{
		world:  world,
		dt:     1.0 / float64(tps),
		bodies: make(map[ecs.Entity]*cp.Body),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.world.Step(ps.dt)
	ps.syncTransforms(w)
}

// cleanupEntities drops bodies whose entity was destroyed or lost its
// PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, body := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.world.RemoveBody(body)
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		if _, exists := ps.bodies[e]; exists && bodyComp.Body != nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		body, shape := ps.createBody(transform, bodyComp)
		if body == nil {
			continue
		}
		if gs, ok := ecs.Get(w, e, component.GravityScaleComponent); ok {
			physics.SetGravityScale(body, gs.Scale)
		}
		bodyComp.Body = body
		bodyComp.Shape = shape
		ps.bodies[e] = body
		log.Debug("created body", "entity", e, "kind", bodyComp.Kind)
	}
}

func (ps *PhysicsSystem) createBody(t *component.Transform, bc *component.PhysicsBody) (*cp.Body, *cp.Shape) {
	center := tileset.Vec{X: t.X, Y: t.Y}

	if bc.Kind == component.BodyKinematic {
		if bc.Width <= 0 || bc.Height <= 0 {
			return nil, nil
		}
		body, shape := ps.world.AddKinematicBox(center, tileset.Vec{X: bc.Width, Y: bc.Height}, bc.Friction)
		body.SetVelocity(bc.VelocityX/ps.world.PixelsPerMeter(), bc.VelocityY/ps.world.PixelsPerMeter())
		return body, shape
	}

	mass := bc.Mass
	if mass <= 0 {
		mass = 1
	}
	mat := physics.Material{
		Mass:          mass,
		Friction:      bc.Friction,
		Elasticity:    bc.Elasticity,
		FixedRotation: bc.FixedRotation,
	}

	var (
		body  *cp.Body
		shape *cp.Shape
	)
	switch {
	case bc.Radius > 0:
		body, shape = ps.world.AddCircle(center, bc.Radius, mat)
	case bc.Width > 0 && bc.Height > 0:
		body, shape = ps.world.AddBox(center, tileset.Vec{X: bc.Width, Y: bc.Height}, mat)
	default:
		return nil, nil
	}
	if bc.VelocityX != 0 || bc.VelocityY != 0 {
		body.SetVelocity(bc.VelocityX/ps.world.PixelsPerMeter(), bc.VelocityY/ps.world.PixelsPerMeter())
	}
	return body, shape
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, bc *component.PhysicsBody) {
		if bc.Body == nil {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		p := ps.world.Position(bc.Body)
		t.X = p.X
		t.Y = p.Y
		t.Rotation = bc.Body.Angle()
	})
}
