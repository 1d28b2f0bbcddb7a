package tileset

// IndexAt returns the grid cell whose tile contains p, or (-1,-1).
// Tiles do not overlap, so the first hit is the only hit.
func (ts *TileSet) IndexAt(p Vec) (col, row int) {
	for _, t := range ts.tiles {
		if t.Contains(p) {
			return t.Col, t.Row
		}
	}
	return -1, -1
}

// RawIDAt returns the packed id under p, or -1.
func (ts *TileSet) RawIDAt(p Vec) int64 {
	col, row := ts.IndexAt(p)
	if col < 0 || row < 0 {
		return -1
	}
	raw, ok := ts.grid.At(col, row)
	if !ok {
		return -1
	}
	return int64(raw)
}

// IsOnTile reports whether the tile under p uses palette, ignoring flags.
func (ts *TileSet) IsOnTile(p Vec, palette uint32) bool {
	raw := ts.RawIDAt(p)
	if raw < 0 {
		return false
	}
	return PaletteOf(uint32(raw)) == palette
}

// WorldPositionOf returns the centre of the last cell, in reading order,
// that uses palette. Empty cells never match.
func (ts *TileSet) WorldPositionOf(palette uint32) (Vec, bool) {
	if palette == 0 {
		return NotFound, false
	}
	cols := ts.grid.Columns()
	for row := ts.grid.Rows() - 1; row >= 0; row-- {
		for col := cols - 1; col >= 0; col-- {
			raw, _ := ts.grid.At(col, row)
			if PaletteOf(raw) != palette {
				continue
			}
			return ts.tiles[row*cols+col].Position, true
		}
	}
	return NotFound, false
}
