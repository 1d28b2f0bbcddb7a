package entity

import (
	"image/color"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/prefabs"
)

var defaultBallColor = color.RGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}

func NewBallAt(w *ecs.World, x, y, tile float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadBallSpec()
	if err != nil {
		return 0, wrapBuild("ball", err)
	}
	return buildEntity(w, "ball",
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.BallTagComponent, &component.BallTag{})
		},
		withTransform(x, y),
		withSpawnPoint(x, y),
		withShape(shapeFor(spec.Body, tile, spec.Color, defaultBallColor)),
		withBody(spec.Body, tile),
		withRenderLayer(spec.RenderLayer),
	)
}
