package entity

import (
	"errors"
	"image"
	"testing"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/levels"
	"github.com/milk9111/tileworld/physics"
	"github.com/milk9111/tileworld/tileset"
)

func testAtlas(t *testing.T) *tileset.Atlas {
	t.Helper()
	atlas, err := tileset.NewAtlas(image.NewRGBA(image.Rect(0, 0, 64, 112)), tileset.Size{W: 8, H: 8}, tileset.Size{W: 8, H: 14})
	if err != nil {
		t.Fatal(err)
	}
	return atlas
}

// testLevel is 4x3 map tiles of 8px; composed at width 64 each tile is 16px.
func testLevel() *levels.Level {
	return &levels.Level{
		Name: "test",
		Grid: tileset.Grid{
			{0, 0, 0, 0},
			{0, 9, 0, 10},
			{1, 1, 1, 1},
		},
		TileWidth:  8,
		TileHeight: 8,
		Spawns: []levels.Spawn{
			{Type: "ball", X: 0, Y: 0, Width: 8, Height: 8},
			{Type: "obstacle", X: 16, Y: 0, Width: 16, Height: 4, Props: map[string]float64{"vx": -10}},
			{Type: "player", X: 0, Y: 0},
			{Type: "mystery", X: 0, Y: 0},
		},
	}
}

func loadTestLevel(t *testing.T, w *ecs.World, pw *physics.World) ecs.Entity {
	t.Helper()
	levelEnt, err := LoadLevelToWorld(w, LevelParams{
		Level:       testLevel(),
		Atlas:       testAtlas(t),
		TargetWidth: 64,
		Physics:     pw,
		Rules:       component.LevelRules{SpawnTile: 9, GoalTile: 10, Next: "next"},
	})
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	return levelEnt
}

func TestLoadLevelToWorld(t *testing.T) {
	w := ecs.NewWorld()
	pw := physics.New(physics.Settings{PixelsPerMeter: 16})
	levelEnt := loadTestLevel(t, w, pw)

	if got := pw.StaticBodies(); got != 6 {
		t.Fatalf("static bodies = %d, want 6", got)
	}

	bounds, ok := ecs.Get(w, levelEnt, component.LevelBoundsComponent)
	if !ok || bounds.Width != 64 || bounds.Height != 48 {
		t.Fatalf("bounds = %+v", bounds)
	}
	rules, ok := ecs.Get(w, levelEnt, component.LevelRulesComponent)
	if !ok || rules.GoalTile != 10 || rules.Next != "next" {
		t.Fatalf("rules = %+v", rules)
	}
	layer, ok := ecs.Get(w, levelEnt, component.TileLayerComponent)
	if !ok || layer.Set == nil || layer.Image != nil {
		t.Fatalf("tile layer = %+v", layer)
	}
	if got := TileSize(layer.Set); got != (tileset.Vec{X: 16, Y: 16}) {
		t.Fatalf("tile size = %+v", got)
	}

	balls := w.Query(component.BallTagComponent.Kind())
	if len(balls) != 1 {
		t.Fatalf("balls = %d", len(balls))
	}
	bt, _ := ecs.Get(w, balls[0], component.TransformComponent)
	if bt.X != 8 || bt.Y != 8 {
		t.Fatalf("ball at (%v,%v), want (8,8)", bt.X, bt.Y)
	}
	shape, _ := ecs.Get(w, balls[0], component.ShapeComponent)
	if shape.Kind != component.ShapeCircle || shape.Radius <= 0 {
		t.Fatalf("ball shape = %+v", shape)
	}

	obstacles := w.Query(component.ObstacleTagComponent.Kind())
	if len(obstacles) != 1 {
		t.Fatalf("obstacles = %d", len(obstacles))
	}
	body, _ := ecs.Get(w, obstacles[0], component.PhysicsBodyComponent)
	if body.Kind != component.BodyKinematic || body.Width != 32 || body.Height != 8 || body.VelocityX != -20 {
		t.Fatalf("obstacle body = %+v", body)
	}
	patrol, _ := ecs.Get(w, obstacles[0], component.PatrolComponent)
	if patrol.Speed != 20 || patrol.MinX >= 48 || patrol.MaxX <= 48 {
		t.Fatalf("patrol = %+v", patrol)
	}

	if _, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		t.Fatal("player objects must not spawn a player")
	}
}

func TestLoadLevelErrors(t *testing.T) {
	tests := []struct {
		name   string
		params LevelParams
	}{
		{"nil level", LevelParams{Atlas: testAtlas(t), TargetWidth: 64}},
		{"empty grid", LevelParams{Level: &levels.Level{}, Atlas: testAtlas(t), TargetWidth: 64}},
		{"no atlas", LevelParams{Level: testLevel(), TargetWidth: 64}},
		{"bad palette", LevelParams{Level: &levels.Level{Grid: tileset.Grid{{113}}}, Atlas: testAtlas(t), TargetWidth: 64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if _, err := LoadLevelToWorld(w, tt.params); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := LoadLevelToWorld(nil, LevelParams{}); err == nil {
		t.Fatal("expected error for nil world")
	}
}

func TestSpawnPlayer(t *testing.T) {
	w := ecs.NewWorld()
	levelEnt := loadTestLevel(t, w, nil)

	player, err := SpawnPlayer(w, levelEnt)
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	// Spawn tile is (col 1, row 1): centre (24, 24); one tile above is y 8.
	if tr.X != 24 || tr.Y != 8 {
		t.Fatalf("player at (%v,%v), want (24,8)", tr.X, tr.Y)
	}
	sp, _ := ecs.Get(w, player, component.SpawnPointComponent)
	if sp.X != 24 || sp.Y != 8 {
		t.Fatalf("spawn point = %+v", sp)
	}
	for _, h := range []component.Kind{
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.ShapeComponent.Kind(),
		component.RenderLayerComponent.Kind(),
	} {
		if !w.HasComponent(player, h.ID()) {
			t.Fatalf("player missing component %d", h.ID())
		}
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent)
	if !body.FixedRotation || body.Width != 12 {
		t.Fatalf("player body = %+v", body)
	}
}

func TestSpawnPlayerMissingTile(t *testing.T) {
	w := ecs.NewWorld()
	levelEnt, err := LoadLevelToWorld(w, LevelParams{
		Level:       &levels.Level{Name: "flat", Grid: tileset.Grid{{1, 1}}},
		Atlas:       testAtlas(t),
		TargetWidth: 32,
		Rules:       component.LevelRules{SpawnTile: 9},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := SpawnPlayer(w, levelEnt); !errors.Is(err, ErrNoSpawn) {
		t.Fatalf("err = %v, want ErrNoSpawn", err)
	}
	if _, err := SpawnPlayer(w, ecs.CreateEntity(w)); err == nil {
		t.Fatal("expected error without level rules")
	}
}

func TestSetEntityTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := SetEntityTransform(w, e, 3, 4, 0.5); err != nil {
		t.Fatal(err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.X != 3 || tr.Y != 4 || tr.Rotation != 0.5 || tr.ScaleX != 1 {
		t.Fatalf("transform = %+v", tr)
	}
}
