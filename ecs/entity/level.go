package entity

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/levels"
	"github.com/milk9111/tileworld/tileset"
)

// LevelParams is everything needed to turn a decoded level into entities.
type LevelParams struct {
	Level *levels.Level
	Atlas *tileset.Atlas
	// Image is the atlas on the GPU. Leave nil for headless worlds.
	Image       *ebiten.Image
	TargetWidth float64
	// Physics receives one static body per non-empty tile. May be nil.
	Physics tileset.PhysicsWorld
	Rules   component.LevelRules
}

// LoadLevelToWorld composes the level's tile set, attaches it to a new level
// entity together with bounds and rules, builds static collision and creates
// the level's spawned objects. It returns the level entity.
func LoadLevelToWorld(w *ecs.World, p LevelParams) (ecs.Entity, error) {
	if w == nil {
		return 0, errNilWorld
	}
	if p.Level == nil {
		return 0, fmt.Errorf("load level: level is nil")
	}

	ts, err := tileset.New(p.Level.Grid, p.Atlas, p.TargetWidth)
	if err != nil {
		return 0, fmt.Errorf("load level %s: %w", p.Level.Name, err)
	}

	bounds := ts.Bounds()
	levelEnt, err := buildEntity(w, "level",
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.TileLayerComponent, &component.TileLayer{Set: ts, Image: p.Image})
		},
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.LevelBoundsComponent, &component.LevelBounds{Width: bounds.X, Height: bounds.Y})
		},
		func(w *ecs.World, e ecs.Entity) error {
			rules := p.Rules
			return ecs.Add(w, e, component.LevelRulesComponent, &rules)
		},
	)
	if err != nil {
		return 0, err
	}

	if p.Physics != nil {
		ts.Build(p.Physics, tileset.SkipEmpty)
	}

	tile := TileSize(ts)
	mapScale := tile.X
	if p.Level.TileWidth > 0 {
		mapScale = tile.X / float64(p.Level.TileWidth)
	}
	for _, s := range p.Level.Spawns {
		if err := spawnObject(w, s, tile.X, mapScale); err != nil {
			return 0, fmt.Errorf("load level %s: %w", p.Level.Name, err)
		}
	}

	log.Info("level loaded", "level", p.Level.Name, "tiles", len(ts.Tiles()), "spawns", len(p.Level.Spawns))
	return levelEnt, nil
}

// TileSize is the on-screen size of one unrotated tile.
func TileSize(ts *tileset.TileSet) tileset.Vec {
	if ts == nil || ts.Atlas() == nil {
		return tileset.Vec{}
	}
	return tileset.Vec{
		X: float64(ts.Atlas().CellWidth()) * ts.Scale(),
		Y: float64(ts.Atlas().CellHeight()) * ts.Scale(),
	}
}

// spawnObject creates the entity for one level object. Object coordinates
// are in map pixels; mapScale converts them to world pixels.
func spawnObject(w *ecs.World, s levels.Spawn, tile, mapScale float64) error {
	cx := (s.X + s.Width/2) * mapScale
	cy := (s.Y + s.Height/2) * mapScale

	var err error
	switch s.Type {
	case "ball":
		_, err = NewBallAt(w, cx, cy, tile)
	case "obstacle":
		_, err = NewObstacleAt(w, cx, cy, tile, ObstacleOptions{
			Width:    s.Width * mapScale,
			Height:   s.Height * mapScale,
			Velocity: s.Prop("vx", 0) * mapScale,
			Range:    s.Prop("range", 0) * mapScale,
		})
	case "player":
		// The player always starts on the spawn tile.
	default:
		log.Warn("unknown level object", "type", s.Type, "name", s.Name)
	}
	return err
}

// SpawnPlayer places the player one tile above the level's spawn tile. When
// the palette occurs more than once the last one in reading order is used.
func SpawnPlayer(w *ecs.World, levelEnt ecs.Entity) (ecs.Entity, error) {
	rules, ok := ecs.Get(w, levelEnt, component.LevelRulesComponent)
	if !ok {
		return 0, fmt.Errorf("spawn player: level has no rules")
	}
	layer, ok := ecs.Get(w, levelEnt, component.TileLayerComponent)
	if !ok || layer.Set == nil {
		return 0, fmt.Errorf("spawn player: level has no tile layer")
	}

	pos, found := layer.Set.WorldPositionOf(rules.SpawnTile)
	if !found {
		return 0, fmt.Errorf("%w: palette %d", ErrNoSpawn, rules.SpawnTile)
	}
	tile := TileSize(layer.Set)
	return NewPlayerAt(w, pos.X, pos.Y-tile.Y, tile.X)
}
