package system

import (
	"math"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
)

// PatrolSystem turns kinematic obstacles around at the ends of their range.
// It runs before physics so the new velocity applies this tick.
type PatrolSystem struct {
	ppm float64
}

func NewPatrolSystem(pixelsPerMeter float64) *PatrolSystem {
	return &PatrolSystem{ppm: pixelsPerMeter}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.ppm <= 0 {
		return
	}
	ecs.ForEach3(w, component.PatrolComponent, component.TransformComponent, component.PhysicsBodyComponent,
		func(_ ecs.Entity, p *component.Patrol, t *component.Transform, bc *component.PhysicsBody) {
			if bc.Body == nil {
				return
			}
			speed := math.Abs(p.Speed)
			vx := bc.Body.Velocity().X * s.ppm
			switch {
			case t.X <= p.MinX:
				vx = speed
			case t.X >= p.MaxX:
				vx = -speed
			case vx == 0:
				vx = speed
			}
			bc.Body.SetVelocity(vx/s.ppm, 0)
		})
}
