package tileset

import (
	"fmt"
	"image"
	"math"
)

// Grid holds packed tile ids, row-major with the origin at the top left.
type Grid [][]uint32

func (g Grid) Rows() int {
	return len(g)
}

// Columns is the length of the first row. Call Validate before trusting it.
func (g Grid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate rejects empty and ragged grids.
func (g Grid) Validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return fmt.Errorf("%w: empty grid", ErrValidation)
	}
	cols := len(g[0])
	for row, line := range g {
		if len(line) != cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrValidation, row, len(line), cols)
		}
	}
	return nil
}

// At returns the packed id at a cell.
func (g Grid) At(col, row int) (uint32, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return 0, false
	}
	return g[row][col], true
}

// PlacedTile is a grid cell resolved to a drawable, positioned sprite.
// Empty cells keep their slot with Empty set and zero geometry.
type PlacedTile struct {
	Col   int
	Row   int
	Raw   uint32
	Empty bool

	Palette     uint32
	Orientation Orientation
	Source      image.Rectangle

	// Origin is the pivot in unscaled cell pixels (the cell centre).
	Origin   Vec
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // degrees, clockwise

	// Footprint is the on-screen width and height after scale and rotation.
	Footprint Vec
	// Position is the world-space centre of the tile.
	Position Vec
}

// Radians returns Rotation in radians.
func (t PlacedTile) Radians() float64 {
	return t.Rotation * math.Pi / 180
}

// Bounds returns the tile's axis-aligned box.
func (t PlacedTile) Bounds() (min, max Vec) {
	hw, hh := t.Footprint.X/2, t.Footprint.Y/2
	return Vec{X: t.Position.X - hw, Y: t.Position.Y - hh}, Vec{X: t.Position.X + hw, Y: t.Position.Y + hh}
}

// Contains tests p against the half-open box [min, max).
func (t PlacedTile) Contains(p Vec) bool {
	if t.Empty {
		return false
	}
	min, max := t.Bounds()
	return p.X >= min.X && p.X < max.X && p.Y >= min.Y && p.Y < max.Y
}

// Compose resolves every cell of grid against atlas. The scale that fits
// grid.Columns() cells into targetWidth is applied to all tiles. The result
// has exactly Rows*Columns entries and entry k is cell (k/Columns, k%Columns).
func Compose(grid Grid, atlas *Atlas, targetWidth float64) ([]PlacedTile, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if atlas == nil {
		return nil, fmt.Errorf("%w: nil atlas", ErrValidation)
	}
	if targetWidth <= 0 || math.IsNaN(targetWidth) || math.IsInf(targetWidth, 0) {
		return nil, fmt.Errorf("%w: target width %v", ErrValidation, targetWidth)
	}

	cols := grid.Columns()
	scale := targetWidth / float64(cols*atlas.CellWidth())
	cellW := float64(atlas.CellWidth())
	cellH := float64(atlas.CellHeight())

	tiles := make([]PlacedTile, 0, grid.Rows()*cols)
	for row, line := range grid {
		for col, raw := range line {
			id := Decode(raw)
			pt := PlacedTile{Col: col, Row: row, Raw: raw, Palette: id.Palette}
			if id.Empty() {
				pt.Empty = true
				tiles = append(tiles, pt)
				continue
			}

			cell, err := atlas.Cell(id.Palette)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", col, row, err)
			}

			o := id.Orientation()
			signX, signY, deg := o.Params()

			w, h := cellW*scale, cellH*scale
			if o.Rotated() {
				w, h = h, w
			}

			pt.Orientation = o
			pt.Source = cell.Source
			pt.Origin = Vec{X: cellW / 2, Y: cellH / 2}
			pt.ScaleX = scale * signX
			pt.ScaleY = scale * signY
			pt.Rotation = deg
			pt.Footprint = Vec{X: w, Y: h}
			pt.Position = Vec{X: float64(col)*w + w/2, Y: float64(row)*h + h/2}
			tiles = append(tiles, pt)
		}
	}
	return tiles, nil
}
