package entity

import (
	"image/color"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/prefabs"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity) error

// buildEntity creates an entity from component builders, destroying it again
// if any builder fails.
func buildEntity(w *ecs.World, name string, builders ...componentBuildFn) (ecs.Entity, error) {
	if w == nil {
		return 0, errNilWorld
	}
	e := ecs.CreateEntity(w)
	for _, build := range builders {
		if err := build(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, wrapBuild(name, err)
		}
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent, t)
}

func withTransform(x, y float64) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return SetEntityTransform(w, e, x, y, 0)
	}
}

func withSpawnPoint(x, y float64) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, component.SpawnPointComponent, &component.SpawnPoint{X: x, Y: y})
	}
}

func withRenderLayer(spec prefabs.RenderLayerSpec) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: spec.Index})
	}
}

func withShape(shape component.Shape) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, component.ShapeComponent, &shape)
	}
}

// withBody adds a dynamic body from a prefab body spec whose sizes are in
// tiles.
func withBody(spec prefabs.BodySpec, tile float64) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
			Kind:          component.BodyDynamic,
			Width:         spec.Width * tile,
			Height:        spec.Height * tile,
			Radius:        spec.Radius * tile,
			Mass:          spec.Mass,
			Friction:      spec.Friction,
			Elasticity:    spec.Elasticity,
			FixedRotation: spec.FixedRotation,
		}); err != nil {
			return err
		}
		if spec.GravityScale == nil {
			return nil
		}
		return ecs.Add(w, e, component.GravityScaleComponent, &component.GravityScale{Scale: spec.Gravity()})
	}
}

func shapeFor(spec prefabs.BodySpec, tile float64, c *prefabs.YAMLColor, def color.RGBA) component.Shape {
	if spec.Radius > 0 {
		return component.Shape{Kind: component.ShapeCircle, Radius: spec.Radius * tile, Color: c.RGBAOr(def)}
	}
	return component.Shape{
		Kind:   component.ShapeRect,
		Width:  spec.Width * tile,
		Height: spec.Height * tile,
		Color:  c.RGBAOr(def),
	}
}
