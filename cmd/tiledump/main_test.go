package main

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/milk9111/tileworld/config"
	"github.com/milk9111/tileworld/levels"
	"github.com/milk9111/tileworld/tileset"
)

func testAtlas(t *testing.T) *tileset.Atlas {
	t.Helper()
	a, err := tileset.NewAtlas(image.NewRGBA(image.Rect(0, 0, 16, 16)), tileset.Size{W: 8, H: 8}, tileset.Size{W: 2, H: 2})
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func TestDump(t *testing.T) {
	lvl := &levels.Level{Name: "tiny", Grid: tileset.Grid{{0, 3}, {0xA0000001, 1}}}
	pc := config.Physics{PixelsPerMeter: 16, Gravity: 30}

	out, err := dump(lvl, testAtlas(t), 32, pc, dumpOptions{Tile: 1})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	for _, want := range []string{
		"PALETTE",
		"2684354561",
		"HD",
		"tiny: 2x2 cells, scale 2.00, 32x32 px, 3 static bodies, 0 objects",
		"tile 1 at (24.0, 24.0)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, " - ") {
		t.Fatalf("empty cells listed without --all:\n%s", out)
	}

	out, err = dump(lvl, testAtlas(t), 32, pc, dumpOptions{Tile: 4, All: true})
	if err != nil {
		t.Fatalf("dump --all: %v", err)
	}
	if !strings.Contains(out, "tile 4 not found") {
		t.Fatalf("missing not-found line:\n%s", out)
	}
}

func TestDumpBadPalette(t *testing.T) {
	lvl := &levels.Level{Name: "bad", Grid: tileset.Grid{{9}}}
	_, err := dump(lvl, testAtlas(t), 32, config.Physics{}, dumpOptions{})
	if !errors.Is(err, tileset.ErrIndex) {
		t.Fatalf("err = %v, want ErrIndex", err)
	}
}

func TestTileRow(t *testing.T) {
	row := tileRow(tileset.PlacedTile{Col: 3, Row: 1, Empty: true})
	if strings.Join(row, ",") != "3,1,0,-,-,-,-,-,-" {
		t.Fatalf("empty row = %v", row)
	}
	row = tileRow(tileset.PlacedTile{
		Col: 0, Row: 2, Raw: 5, Palette: 5,
		Position:  tileset.Vec{X: 16, Y: 80},
		Footprint: tileset.Vec{X: 32, Y: 32},
	})
	if strings.Join(row, ",") != "0,2,5,5,none,16.0,80.0,32.0,32.0" {
		t.Fatalf("row = %v", row)
	}
}
