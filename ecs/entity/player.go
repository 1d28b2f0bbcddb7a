package entity

import (
	"image/color"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/prefabs"
)

var defaultPlayerColor = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}

// NewPlayerAt builds the player centred on (x, y). tile is the on-screen size
// of one tile in pixels; prefab sizes are multiples of it.
func NewPlayerAt(w *ecs.World, x, y, tile float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, wrapBuild("player", err)
	}
	return buildEntity(w, "player",
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})
		},
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.PlayerComponent, &component.Player{
				MoveForce:   spec.MoveForce,
				JumpImpulse: spec.JumpImpulse,
				MaxSpeed:    spec.MaxSpeed,
			})
		},
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.InputComponent, &component.Input{})
		},
		withTransform(x, y),
		withSpawnPoint(x, y),
		withShape(shapeFor(spec.Body, tile, spec.Color, defaultPlayerColor)),
		withBody(spec.Body, tile),
		withRenderLayer(spec.RenderLayer),
	)
}
