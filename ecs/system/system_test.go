package system

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/ecs/entity"
	"github.com/milk9111/tileworld/levels"
	"github.com/milk9111/tileworld/physics"
	"github.com/milk9111/tileworld/tileset"
)

// newTestScene builds a 4x3 level with 16px tiles: a floor on row 2, the
// spawn pad at (1,1) and the goal pad at (3,1).
func newTestScene(t *testing.T) (*ecs.World, *physics.World, ecs.Entity) {
	t.Helper()
	atlas, err := tileset.NewAtlas(image.NewRGBA(image.Rect(0, 0, 64, 112)), tileset.Size{W: 8, H: 8}, tileset.Size{W: 8, H: 14})
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	pw := physics.New(physics.Settings{PixelsPerMeter: 16, Gravity: 30})
	levelEnt, err := entity.LoadLevelToWorld(w, entity.LevelParams{
		Level: &levels.Level{
			Name: "test",
			Grid: tileset.Grid{
				{0, 0, 0, 0},
				{0, 9, 0, 10},
				{1, 1, 1, 1},
			},
			TileWidth: 8,
		},
		Atlas:       atlas,
		TargetWidth: 64,
		Physics:     pw,
		Rules:       component.LevelRules{SpawnTile: 9, GoalTile: 10, Next: "next"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return w, pw, levelEnt
}

func TestPhysicsSystem(t *testing.T) {
	w, pw, _ := newTestScene(t)
	ball, err := entity.NewBallAt(w, 40, 4, 16)
	if err != nil {
		t.Fatal(err)
	}
	ps := NewPhysicsSystem(pw, 60)

	ps.Update(w)
	bc, _ := ecs.Get(w, ball, component.PhysicsBodyComponent)
	if bc.Body == nil || bc.Shape == nil {
		t.Fatal("physics system did not create a body")
	}
	for i := 0; i < 30; i++ {
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, ball, component.TransformComponent)
	if tr.Y <= 4 {
		t.Fatalf("ball did not fall, y = %v", tr.Y)
	}

	ecs.DestroyEntity(w, ball)
	ps.Update(w)
	if len(ps.bodies) != 0 {
		t.Fatalf("bodies after destroy = %d", len(ps.bodies))
	}
}

func TestPatrolSystem(t *testing.T) {
	w, pw, _ := newTestScene(t)
	obstacle, err := entity.NewObstacleAt(w, 32, 4, 16, entity.ObstacleOptions{Velocity: 16, Range: 32})
	if err != nil {
		t.Fatal(err)
	}
	ps := NewPhysicsSystem(pw, 60)
	patrol := NewPatrolSystem(pw.PixelsPerMeter())
	ps.Update(w)

	bc, _ := ecs.Get(w, obstacle, component.PhysicsBodyComponent)
	if vx := bc.Body.Velocity().X; vx != 1 {
		t.Fatalf("initial vx = %v m/s, want 1", vx)
	}

	tr, _ := ecs.Get(w, obstacle, component.TransformComponent)
	tr.X = 49
	patrol.Update(w)
	if vx := bc.Body.Velocity().X; vx >= 0 {
		t.Fatalf("vx past max = %v, want negative", vx)
	}

	tr.X = 15
	patrol.Update(w)
	if vx := bc.Body.Velocity().X; vx <= 0 {
		t.Fatalf("vx past min = %v, want positive", vx)
	}
}

func TestGoalSystem(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		flip    bool
		reached bool
	}{
		{name: "standing on goal", x: 56, y: 8.8, reached: true},
		{name: "standing on spawn", x: 24, y: 8.8},
		{name: "in the air", x: 56, y: 2},
		{name: "gravity flipped", x: 56, y: 8.8, flip: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, pw, levelEnt := newTestScene(t)
			if tt.flip {
				pw.FlipGravity()
			}
			if _, err := entity.NewPlayerAt(w, tt.x, tt.y, 16); err != nil {
				t.Fatal(err)
			}
			NewGoalSystem(pw).Update(w)

			req, ok := ecs.Get(w, levelEnt, component.SceneChangeRequestComponent)
			if ok != tt.reached {
				t.Fatalf("scene change requested = %v, want %v", ok, tt.reached)
			}
			if ok && req.Scene != "next" {
				t.Fatalf("scene = %q", req.Scene)
			}
		})
	}
}

func TestFeetProbe(t *testing.T) {
	tr := &component.Transform{X: 10, Y: 20}
	if got := feetProbe(tr, 5, 9.8); got != (tileset.Vec{X: 10, Y: 26}) {
		t.Fatalf("down probe = %+v", got)
	}
	if got := feetProbe(tr, 5, -9.8); got != (tileset.Vec{X: 10, Y: 14}) {
		t.Fatalf("up probe = %+v", got)
	}
}

func TestRespawnSystem(t *testing.T) {
	w, pw, _ := newTestScene(t)
	ps := NewPhysicsSystem(pw, 60)
	rs := NewRespawnSystem(pw)

	player, err := entity.SpawnPlayer(w, mustLevel(t, w))
	if err != nil {
		t.Fatal(err)
	}
	ball, err := entity.NewBallAt(w, 40, 4, 16)
	if err != nil {
		t.Fatal(err)
	}
	ps.Update(w)

	bt, _ := ecs.Get(w, ball, component.TransformComponent)
	bt.Y = 48 + boundsMargin + 1
	_ = ecs.Add(w, player, component.RespawnRequestComponent, &component.RespawnRequest{})
	pt, _ := ecs.Get(w, player, component.TransformComponent)
	pt.X = 50

	rs.Update(w)

	if bt.X != 40 || bt.Y != 4 {
		t.Fatalf("ball not respawned: (%v,%v)", bt.X, bt.Y)
	}
	if pt.X != 24 || pt.Y != 8 {
		t.Fatalf("player not respawned: (%v,%v)", pt.X, pt.Y)
	}
	if ecs.Has(w, player, component.RespawnRequestComponent) {
		t.Fatal("respawn request not cleared")
	}
	bc, _ := ecs.Get(w, ball, component.PhysicsBodyComponent)
	if p := pw.Position(bc.Body); math.Abs(p.X-40) > 1e-9 || math.Abs(p.Y-4) > 1e-9 {
		t.Fatalf("ball body at %+v", p)
	}
}

func mustLevel(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e, ok := w.First(component.LevelRulesComponent.Kind())
	if !ok {
		t.Fatal("no level entity")
	}
	return e
}

func TestOutOfBounds(t *testing.T) {
	b := &component.LevelBounds{Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{50, 25, false},
		{-boundsMargin - 1, 25, true},
		{100 + boundsMargin + 1, 25, true},
		{50, -boundsMargin - 1, true},
		{50, 50 + boundsMargin, false},
	}
	for _, tt := range tests {
		if got := outOfBounds(&component.Transform{X: tt.x, Y: tt.y}, b); got != tt.want {
			t.Errorf("outOfBounds(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if outOfBounds(&component.Transform{X: -1e6}, nil) {
		t.Error("nil bounds should never be out of bounds")
	}
}

func TestPlayerControllerJump(t *testing.T) {
	w, pw, levelEnt := newTestScene(t)
	player, err := entity.SpawnPlayer(w, levelEnt)
	if err != nil {
		t.Fatal(err)
	}
	ps := NewPhysicsSystem(pw, 60)
	pc := NewPlayerControllerSystem(pw)
	for i := 0; i < 60; i++ {
		ps.Update(w)
	}
	bc, _ := ecs.Get(w, player, component.PhysicsBodyComponent)
	if !pw.Grounded(bc.Body) {
		t.Fatal("player should be resting on the spawn pad")
	}

	input, _ := ecs.Get(w, player, component.InputComponent)
	input.JumpPressed = true
	pc.Update(w)
	if vy := bc.Body.Velocity().Y; vy >= 0 {
		t.Fatalf("jump velocity = %v, want upward", vy)
	}
}

func TestPlayerControllerMove(t *testing.T) {
	w, pw, levelEnt := newTestScene(t)
	player, err := entity.SpawnPlayer(w, levelEnt)
	if err != nil {
		t.Fatal(err)
	}
	ps := NewPhysicsSystem(pw, 60)
	pc := NewPlayerControllerSystem(pw)
	ps.Update(w)

	input, _ := ecs.Get(w, player, component.InputComponent)
	input.MoveX = 1
	for i := 0; i < 10; i++ {
		pc.Update(w)
		ps.Update(w)
	}
	bc, _ := ecs.Get(w, player, component.PhysicsBodyComponent)
	if vx := bc.Body.Velocity().X; vx <= 0 {
		t.Fatalf("vx = %v, want positive", vx)
	}
}

func TestHUDText(t *testing.T) {
	pw := physics.New(physics.Settings{Gravity: 12.5})
	h := &HUDSystem{scene: "level_1", world: pw}
	got := h.Text(59.6)
	for _, want := range []string{"FPS: 60", "Gravity: 12.5", "Scene: level_1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("HUD %q missing %q", got, want)
		}
	}
}

func TestTileGeoM(t *testing.T) {
	atlas, err := tileset.NewAtlas(image.NewRGBA(image.Rect(0, 0, 16, 16)), tileset.Size{W: 8, H: 8}, tileset.Size{W: 2, H: 2})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		raw  uint32
		// Where the cell's top-left source pixel lands.
		wantX, wantY float64
	}{
		{"plain", 1, 0, 0},
		{"horizontal", tileset.FlipHorizontal | 1, 16, 0},
		{"vertical", tileset.FlipVertical | 1, 0, 16},
		{"both", tileset.FlipHorizontal | tileset.FlipVertical | 1, 16, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles, err := tileset.Compose(tileset.Grid{{tt.raw}}, atlas, 16)
			if err != nil {
				t.Fatal(err)
			}
			m := tileGeoM(tiles[0])
			x, y := m.Apply(0, 0)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Fatalf("top-left maps to (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
			// The pivot always lands on the tile centre.
			cx, cy := m.Apply(4, 4)
			if math.Abs(cx-8) > 1e-9 || math.Abs(cy-8) > 1e-9 {
				t.Fatalf("centre maps to (%v,%v)", cx, cy)
			}
		})
	}
}
