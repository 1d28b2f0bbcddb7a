package levels

import (
	"fmt"
	"strings"

	"github.com/milk9111/tileworld/tileset"
)

// TileLayerName is the layer read into the grid. If no layer has this name
// the first tile layer is used.
const TileLayerName = "tiles"

// Level is a decoded level: the packed grid plus the objects placed on it.
type Level struct {
	Name       string
	Grid       tileset.Grid
	TileWidth  int
	TileHeight int
	Spawns     []Spawn
}

// Spawn is an object from the level's object layers, in the editor's pixel
// space (TileWidth x TileHeight per cell).
type Spawn struct {
	Name   string
	Type   string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Props  map[string]float64
}

// Prop returns a numeric property or def when it is absent.
func (s Spawn) Prop(name string, def float64) float64 {
	if v, ok := s.Props[name]; ok {
		return v
	}
	return def
}

// Cells converts an editor-space length pair into cell units.
func (l *Level) Cells(x, y float64) (float64, float64) {
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return x, y
	}
	return x / float64(l.TileWidth), y / float64(l.TileHeight)
}

// SpawnsOf returns the spawns of one object type, case-insensitively.
func (l *Level) SpawnsOf(kind string) []Spawn {
	var out []Spawn
	for _, s := range l.Spawns {
		if strings.EqualFold(s.Type, kind) {
			out = append(out, s)
		}
	}
	return out
}

// gridFromData reshapes a flat row-major id list into a grid, rebasing gids
// so palette 1 is the tileset's first tile.
func gridFromData(data []uint32, width, height int, firstGID uint32) (tileset.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: layer size %dx%d", tileset.ErrValidation, width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: layer has %d tiles, want %dx%d", tileset.ErrValidation, len(data), width, height)
	}
	if firstGID == 0 {
		firstGID = 1
	}
	grid := make(tileset.Grid, height)
	for row := 0; row < height; row++ {
		line := make([]uint32, width)
		for col := 0; col < width; col++ {
			line[col] = rebase(data[row*width+col], firstGID)
		}
		grid[row] = line
	}
	return grid, nil
}

func rebase(raw, firstGID uint32) uint32 {
	id := tileset.Decode(raw)
	if id.Empty() || firstGID == 1 {
		return raw
	}
	if id.Palette < firstGID {
		id.Palette = 0
	} else {
		id.Palette = id.Palette - firstGID + 1
	}
	return id.Pack()
}
