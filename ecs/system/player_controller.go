package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/physics"
)

// PlayerControllerSystem turns Input into forces on the player's body. Jumps
// push against whichever way gravity currently points.
type PlayerControllerSystem struct {
	world *physics.World
}

func NewPlayerControllerSystem(world *physics.World) *PlayerControllerSystem {
	return &PlayerControllerSystem{world: world}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if s == nil || s.world == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		player, _ := ecs.Get(w, e, component.PlayerComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)
		bc, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if player == nil || input == nil || bc == nil || bc.Body == nil {
			continue
		}
		s.move(bc.Body, player, input)
		if input.JumpPressed && s.world.Grounded(bc.Body) {
			s.jump(bc.Body, player)
		}
	}
}

// move applies MoveForce toward the input direction until MaxSpeed, and
// brakes the body when there is no input.
func (s *PlayerControllerSystem) move(body *cp.Body, player *component.Player, input *component.Input) {
	v := body.Velocity()
	switch {
	case input.MoveX != 0:
		if player.MaxSpeed > 0 && math.Abs(v.X) >= player.MaxSpeed && math.Signbit(v.X) == math.Signbit(input.MoveX) {
			return
		}
		body.ApplyForceAtLocalPoint(cp.Vector{X: input.MoveX * player.MoveForce * body.Mass()}, cp.Vector{})
	case v.X != 0:
		body.SetVelocity(v.X*0.8, v.Y)
	}
}

func (s *PlayerControllerSystem) jump(body *cp.Body, player *component.Player) {
	up := -math.Copysign(1, s.world.Gravity())
	v := body.Velocity()
	// Cancel motion along gravity so jumps have a consistent height.
	body.SetVelocity(v.X, 0)
	body.ApplyImpulseAtLocalPoint(cp.Vector{Y: up * player.JumpImpulse * body.Mass()}, cp.Vector{})
}
