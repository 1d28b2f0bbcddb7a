package system

import (
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/physics"
	"github.com/milk9111/tileworld/tileset"
)

// boundsMargin is how far past the level edge a body may travel before it is
// sent back to its spawn point.
const boundsMargin = 64

type RespawnSystem struct {
	world *physics.World
}

func NewRespawnSystem(world *physics.World) *RespawnSystem {
	return &RespawnSystem{world: world}
}

// Update performs pending respawn requests and returns bodies that left the
// level to their spawn point. It runs after the PhysicsSystem so transforms
// are current.
func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var bounds *component.LevelBounds
	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		bounds, _ = ecs.Get(w, e, component.LevelBoundsComponent)
	}

	ecs.ForEach3(w, component.SpawnPointComponent, component.TransformComponent, component.PhysicsBodyComponent,
		func(e ecs.Entity, sp *component.SpawnPoint, t *component.Transform, bc *component.PhysicsBody) {
			requested := ecs.Has(w, e, component.RespawnRequestComponent)
			if !requested && !outOfBounds(t, bounds) {
				return
			}
			_ = ecs.Remove(w, e, component.RespawnRequestComponent)

			t.X = sp.X
			t.Y = sp.Y
			if bc.Body != nil && s.world != nil {
				s.world.SetPosition(bc.Body, tileset.Vec{X: sp.X, Y: sp.Y})
			}
		})

	// Requests on entities without a spawn point are dropped.
	for _, e := range w.Query(component.RespawnRequestComponent.Kind()) {
		_ = ecs.Remove(w, e, component.RespawnRequestComponent)
	}
}

func outOfBounds(t *component.Transform, b *component.LevelBounds) bool {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return t.X < -boundsMargin || t.X > b.Width+boundsMargin ||
		t.Y < -boundsMargin || t.Y > b.Height+boundsMargin
}
