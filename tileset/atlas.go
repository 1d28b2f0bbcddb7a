package tileset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Atlas slices a source image into a grid of equally sized cells. Palette
// index i (1-based) addresses cell i-1 in row-major order.
type Atlas struct {
	img     image.Image
	cellW   int
	cellH   int
	columns int
	rows    int
}

// Cell is one palette entry: its index and where it sits in the source image.
type Cell struct {
	Index  uint32
	Source image.Rectangle
}

// NewAtlas wraps an already decoded image.
func NewAtlas(img image.Image, cell, grid Size) (*Atlas, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil atlas image", ErrIO)
	}
	if cell.W <= 0 || cell.H <= 0 || grid.W <= 0 || grid.H <= 0 {
		return nil, fmt.Errorf("%w: cell %dx%d grid %dx%d", ErrIO, cell.W, cell.H, grid.W, grid.H)
	}
	b := img.Bounds()
	if b.Dx() < cell.W*grid.W || b.Dy() < cell.H*grid.H {
		return nil, fmt.Errorf("%w: image %dx%d smaller than %dx%d cells of %dx%d",
			ErrIO, b.Dx(), b.Dy(), grid.W, grid.H, cell.W, cell.H)
	}
	return &Atlas{
		img:     img,
		cellW:   cell.W,
		cellH:   cell.H,
		columns: grid.W,
		rows:    grid.H,
	}, nil
}

// LoadAtlas reads and decodes path from fsys. PNG, JPEG, GIF, BMP and WebP
// sources are understood.
func LoadAtlas(fsys fs.FS, path string, cell, grid Size) (*Atlas, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: read atlas %s: %v", ErrIO, path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode atlas %s: %v", ErrIO, path, err)
	}
	atlas, err := NewAtlas(img, cell, grid)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", path, err)
	}
	return atlas, nil
}

func (a *Atlas) Image() image.Image {
	return a.img
}

func (a *Atlas) CellWidth() int {
	return a.cellW
}

func (a *Atlas) CellHeight() int {
	return a.cellH
}

func (a *Atlas) Columns() int {
	return a.columns
}

func (a *Atlas) Rows() int {
	return a.rows
}

// CellCount is the number of addressable palette entries.
func (a *Atlas) CellCount() int {
	return a.columns * a.rows
}

// Cell looks up a palette entry. Index 0 means "no tile" and is rejected.
func (a *Atlas) Cell(index uint32) (Cell, error) {
	if index < 1 || uint64(index) > uint64(a.CellCount()) {
		return Cell{}, fmt.Errorf("%w: palette %d not in 1..%d", ErrIndex, index, a.CellCount())
	}
	i := int(index - 1)
	x := (i%a.columns)*a.cellW + a.img.Bounds().Min.X
	y := (i/a.columns)*a.cellH + a.img.Bounds().Min.Y
	return Cell{
		Index:  index,
		Source: image.Rect(x, y, x+a.cellW, y+a.cellH),
	}, nil
}
