// Package tileset turns a grid of packed tile ids into placed, oriented sprites
// cut from a shared atlas and gives solid tiles static collision bodies.
package tileset

import (
	"errors"
	"fmt"
)

var (
	ErrIO         = errors.New("tileset: io")
	ErrIndex      = errors.New("tileset: index out of range")
	ErrValidation = errors.New("tileset: invalid input")
)

// Vec is a point or extent in graphics space unless stated otherwise.
type Vec struct {
	X float64
	Y float64
}

// NotFound is the sentinel returned by position queries that miss.
var NotFound = Vec{X: -1, Y: -1}

// Size is an integer width/height pair, used for cell sizes and grid dimensions.
type Size struct {
	W int
	H int
}

// TileSet owns a level's packed grid and the tiles composed from it.
// It is read-only once built.
type TileSet struct {
	grid  Grid
	atlas *Atlas
	tiles []PlacedTile
	scale float64
}

// New composes grid against atlas, fitting the level width to targetWidth.
func New(grid Grid, atlas *Atlas, targetWidth float64) (*TileSet, error) {
	tiles, err := Compose(grid, atlas, targetWidth)
	if err != nil {
		return nil, err
	}
	return &TileSet{
		grid:  grid,
		atlas: atlas,
		tiles: tiles,
		scale: targetWidth / float64(grid.Columns()*atlas.CellWidth()),
	}, nil
}

// Build creates static bodies for the tile set's solid tiles.
func (ts *TileSet) Build(world PhysicsWorld, skip SkipRule) int {
	if ts == nil {
		return 0
	}
	return Synthesize(ts.tiles, world, skip)
}

func (ts *TileSet) Grid() Grid {
	return ts.grid
}

func (ts *TileSet) Atlas() *Atlas {
	return ts.atlas
}

// Tiles returns the composed tiles, one per grid cell in row-major order.
func (ts *TileSet) Tiles() []PlacedTile {
	return ts.tiles
}

func (ts *TileSet) Scale() float64 {
	return ts.scale
}

// Size returns the grid dimensions in cells.
func (ts *TileSet) Size() Size {
	return Size{W: ts.grid.Columns(), H: ts.grid.Rows()}
}

// Bounds returns the level extent in graphics space.
func (ts *TileSet) Bounds() Vec {
	return Vec{
		X: float64(ts.grid.Columns()*ts.atlas.CellWidth()) * ts.scale,
		Y: float64(ts.grid.Rows()*ts.atlas.CellHeight()) * ts.scale,
	}
}

// Tile returns the placed tile for a grid cell.
func (ts *TileSet) Tile(col, row int) (PlacedTile, error) {
	if row < 0 || row >= ts.grid.Rows() || col < 0 || col >= ts.grid.Columns() {
		return PlacedTile{}, fmt.Errorf("%w: cell (%d,%d)", ErrIndex, col, row)
	}
	return ts.tiles[row*ts.grid.Columns()+col], nil
}
