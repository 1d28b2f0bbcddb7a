package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/physics"
	"github.com/milk9111/tileworld/tileset"
)

// GoalSystem requests the next scene once the player stands on the level's
// goal tile.
type GoalSystem struct {
	world *physics.World
}

func NewGoalSystem(world *physics.World) *GoalSystem {
	return &GoalSystem{world: world}
}

func (s *GoalSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	levelEnt, ok := w.First(component.LevelRulesComponent.Kind())
	if !ok {
		return
	}
	rules, _ := ecs.Get(w, levelEnt, component.LevelRulesComponent)
	layer, ok := ecs.Get(w, levelEnt, component.TileLayerComponent)
	if !ok || layer.Set == nil || rules.GoalTile == 0 || rules.Next == "" {
		return
	}
	if ecs.Has(w, levelEnt, component.SceneChangeRequestComponent) {
		return
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}
	halfH := 0.0
	if bc, ok := ecs.Get(w, player, component.PhysicsBodyComponent); ok {
		halfH = math.Max(bc.Height, bc.Radius*2) / 2
	}

	if !layer.Set.IsOnTile(feetProbe(t, halfH, s.gravity()), rules.GoalTile) {
		return
	}
	log.Info("goal reached", "next", rules.Next)
	_ = ecs.Add(w, levelEnt, component.SceneChangeRequestComponent, &component.SceneChangeRequest{Scene: rules.Next})
}

func (s *GoalSystem) gravity() float64 {
	if s.world == nil {
		return 1
	}
	return s.world.Gravity()
}

// feetProbe returns the point just past the body's edge in the direction of
// gravity, which lies inside whatever tile the body stands on.
func feetProbe(t *component.Transform, halfHeight, gravity float64) tileset.Vec {
	dir := 1.0
	if gravity < 0 {
		dir = -1
	}
	return tileset.Vec{X: t.X, Y: t.Y + dir*(halfHeight+1)}
}
