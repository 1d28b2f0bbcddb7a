package tileset

import "github.com/charmbracelet/log"

// Material is the surface definition given to every synthesized tile body.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

// TileMaterial is used for all static tile bodies.
var TileMaterial = Material{Density: 1, Friction: 0, Restitution: 0}

// PhysicsWorld is the part of a physics engine the synthesizer needs.
// Box extents are half sizes, in physics units.
type PhysicsWorld interface {
	ToPhysics(v Vec) Vec
	AddStaticBox(center, halfExtents Vec, m Material)
}

// SkipRule selects which placed tiles get no body.
type SkipRule int

const (
	// SkipEmpty skips placeholder tiles.
	SkipEmpty SkipRule = iota
	// SkipOrigin skips tiles whose position is exactly (0,0). Empty tiles
	// sit at the origin, so this matches SkipEmpty except for a real tile
	// placed there.
	SkipOrigin
)

func (r SkipRule) skips(t PlacedTile) bool {
	if r == SkipOrigin {
		return t.Position == (Vec{})
	}
	return t.Empty
}

// Synthesize adds one static box per solid tile and returns how many were
// created.
func Synthesize(tiles []PlacedTile, world PhysicsWorld, skip SkipRule) int {
	if world == nil {
		return 0
	}
	n := 0
	for _, t := range tiles {
		if skip.skips(t) {
			continue
		}
		center := world.ToPhysics(t.Position)
		half := world.ToPhysics(Vec{X: t.Footprint.X / 2, Y: t.Footprint.Y / 2})
		world.AddStaticBox(center, half, TileMaterial)
		n++
	}
	log.Info("created static bodies", "count", n)
	return n
}
