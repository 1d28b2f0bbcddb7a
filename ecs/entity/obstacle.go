package entity

import (
	"image/color"
	"math"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/prefabs"
)

var defaultObstacleColor = color.RGBA{R: 0x8d, G: 0x6e, B: 0x63, A: 0xff}

// ObstacleOptions override the prefab per placement. Zero values keep the
// prefab's setting. Velocity and Range are in pixels.
type ObstacleOptions struct {
	Width    float64
	Height   float64
	Velocity float64
	Range    float64
}

// NewObstacleAt builds a kinematic platform that patrols around x.
func NewObstacleAt(w *ecs.World, x, y, tile float64, opts ObstacleOptions) (ecs.Entity, error) {
	spec, err := prefabs.LoadObstacleSpec()
	if err != nil {
		return 0, wrapBuild("obstacle", err)
	}

	width, height := spec.Width*tile, spec.Height*tile
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	vx := spec.Speed * tile
	if opts.Velocity != 0 {
		vx = opts.Velocity
	}
	span := spec.Range * tile
	if opts.Range > 0 {
		span = opts.Range
	}

	return buildEntity(w, "obstacle",
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.ObstacleTagComponent, &component.ObstacleTag{})
		},
		withTransform(x, y),
		withSpawnPoint(x, y),
		withShape(component.Shape{
			Kind:   component.ShapeRect,
			Width:  width,
			Height: height,
			Color:  spec.Color.RGBAOr(defaultObstacleColor),
		}),
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
				Kind:      component.BodyKinematic,
				Width:     width,
				Height:    height,
				Friction:  spec.Friction,
				VelocityX: vx,
			})
		},
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.PatrolComponent, &component.Patrol{
				MinX:  x - span/2,
				MaxX:  x + span/2,
				Speed: math.Abs(vx),
			})
		},
		withRenderLayer(spec.RenderLayer),
	)
}
