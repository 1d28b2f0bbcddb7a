package tileset

import "testing"

func testTileSet(t *testing.T) *TileSet {
	t.Helper()
	ts, err := New(Grid{{1, 0}, {0x80000002, 1}}, testAtlas(t), 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ts
}

func TestIndexAtAndRawIDAt(t *testing.T) {
	ts := testTileSet(t)
	cases := []struct {
		name     string
		p        Vec
		col, row int
		raw      int64
	}{
		{"top_left", Vec{X: 4, Y: 4}, 0, 0, 1},
		{"origin_corner", Vec{X: 0, Y: 0}, 0, 0, 1},
		{"empty_cell", Vec{X: 12, Y: 4}, -1, -1, -1},
		{"flagged", Vec{X: 1, Y: 15}, 0, 1, 0x80000002},
		{"shared_edge", Vec{X: 8, Y: 8}, 1, 1, 1},
		{"outside_left", Vec{X: -1, Y: 3}, -1, -1, -1},
		{"outside_right", Vec{X: 16, Y: 12}, -1, -1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col, row := ts.IndexAt(c.p)
			if col != c.col || row != c.row {
				t.Fatalf("IndexAt(%v) = (%d,%d), want (%d,%d)", c.p, col, row, c.col, c.row)
			}
			if raw := ts.RawIDAt(c.p); raw != c.raw {
				t.Fatalf("RawIDAt(%v) = %#x, want %#x", c.p, raw, c.raw)
			}
		})
	}
}

func TestIsOnTile(t *testing.T) {
	ts := testTileSet(t)
	if !ts.IsOnTile(Vec{X: 4, Y: 4}, 1) {
		t.Fatal("expected palette 1 at (4,4)")
	}
	if !ts.IsOnTile(Vec{X: 4, Y: 12}, 2) {
		t.Fatal("flags should be ignored")
	}
	if ts.IsOnTile(Vec{X: 4, Y: 4}, 2) {
		t.Fatal("palette 2 is not at (4,4)")
	}
	for _, id := range []uint32{0, 1, 2, 3} {
		for _, p := range []Vec{{X: -5, Y: -5}, {X: 100, Y: 4}, {X: 12, Y: 4}} {
			if ts.IsOnTile(p, id) {
				t.Fatalf("IsOnTile(%v, %d) should be false", p, id)
			}
		}
	}
}

func TestWorldPositionOf(t *testing.T) {
	ts := testTileSet(t)
	cases := []struct {
		name    string
		palette uint32
		want    Vec
		ok      bool
	}{
		{"last_in_reading_order", 1, Vec{X: 12, Y: 12}, true},
		{"flagged_cell", 2, Vec{X: 4, Y: 12}, true},
		{"absent", 3, NotFound, false},
		{"empty_palette", 0, NotFound, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ts.WorldPositionOf(c.palette)
			if got != c.want || ok != c.ok {
				t.Fatalf("WorldPositionOf(%d) = %v,%v, want %v,%v", c.palette, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestTileSetAccessors(t *testing.T) {
	ts := testTileSet(t)
	if ts.Size() != (Size{W: 2, H: 2}) {
		t.Fatalf("Size = %v", ts.Size())
	}
	if ts.Bounds() != (Vec{X: 16, Y: 16}) {
		t.Fatalf("Bounds = %v", ts.Bounds())
	}
	if ts.Scale() != 1 {
		t.Fatalf("Scale = %v", ts.Scale())
	}
	if len(ts.Tiles()) != len(ts.Grid())*len(ts.Grid()[0]) {
		t.Fatalf("tile count %d does not match grid", len(ts.Tiles()))
	}
	tile, err := ts.Tile(1, 1)
	if err != nil || tile.Palette != 1 {
		t.Fatalf("Tile(1,1) = %+v, %v", tile, err)
	}
	if _, err := ts.Tile(2, 0); err == nil {
		t.Fatal("expected error for out of range cell")
	}

	w := &recordingWorld{scale: 1}
	if n := ts.Build(w, SkipEmpty); n != 3 {
		t.Fatalf("Build = %d", n)
	}
}
