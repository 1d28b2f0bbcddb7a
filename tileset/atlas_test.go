package tileset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func testAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := NewAtlas(testImage(16, 16), Size{W: 8, H: 8}, Size{W: 2, H: 2})
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func TestAtlasCell(t *testing.T) {
	a := testAtlas(t)
	if a.CellCount() != 4 {
		t.Fatalf("CellCount = %d", a.CellCount())
	}

	cases := []struct {
		index uint32
		want  image.Rectangle
	}{
		{1, image.Rect(0, 0, 8, 8)},
		{2, image.Rect(8, 0, 16, 8)},
		{3, image.Rect(0, 8, 8, 16)},
		{4, image.Rect(8, 8, 16, 16)},
	}
	for _, c := range cases {
		cell, err := a.Cell(c.index)
		if err != nil {
			t.Fatalf("Cell(%d): %v", c.index, err)
		}
		if cell.Source != c.want || cell.Index != c.index {
			t.Fatalf("Cell(%d) = %+v, want %v", c.index, cell, c.want)
		}
	}

	for _, bad := range []uint32{0, 5, 0xFFFFFFFF} {
		if _, err := a.Cell(bad); !errors.Is(err, ErrIndex) {
			t.Fatalf("Cell(%d) err = %v, want ErrIndex", bad, err)
		}
	}
}

func TestAtlasOffsetImage(t *testing.T) {
	sub := testImage(32, 32).SubImage(image.Rect(8, 8, 24, 24))
	a, err := NewAtlas(sub, Size{W: 8, H: 8}, Size{W: 2, H: 2})
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	cell, err := a.Cell(4)
	if err != nil {
		t.Fatal(err)
	}
	if cell.Source != image.Rect(16, 16, 24, 24) {
		t.Fatalf("source = %v", cell.Source)
	}
}

func TestNewAtlasRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name string
		img  image.Image
		cell Size
		grid Size
	}{
		{"nil_image", nil, Size{W: 8, H: 8}, Size{W: 1, H: 1}},
		{"zero_cell", testImage(8, 8), Size{W: 0, H: 8}, Size{W: 1, H: 1}},
		{"zero_grid", testImage(8, 8), Size{W: 8, H: 8}, Size{W: 1, H: 0}},
		{"too_small", testImage(15, 16), Size{W: 8, H: 8}, Size{W: 2, H: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewAtlas(c.img, c.cell, c.grid); !errors.Is(err, ErrIO) {
				t.Fatalf("err = %v, want ErrIO", err)
			}
		})
	}
}

func TestLoadAtlas(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(16, 8)); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"tiles.png": &fstest.MapFile{Data: buf.Bytes()},
		"junk.png":  &fstest.MapFile{Data: []byte("not an image")},
	}

	a, err := LoadAtlas(fsys, "tiles.png", Size{W: 8, H: 8}, Size{W: 2, H: 1})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if a.Columns() != 2 || a.Rows() != 1 || a.CellWidth() != 8 || a.CellHeight() != 8 {
		t.Fatalf("unexpected atlas %+v", a)
	}

	if _, err := LoadAtlas(fsys, "missing.png", Size{W: 8, H: 8}, Size{W: 1, H: 1}); !errors.Is(err, ErrIO) {
		t.Fatalf("missing: err = %v", err)
	}
	if _, err := LoadAtlas(fsys, "junk.png", Size{W: 8, H: 8}, Size{W: 1, H: 1}); !errors.Is(err, ErrIO) {
		t.Fatalf("junk: err = %v", err)
	}
	if _, err := LoadAtlas(fsys, "tiles.png", Size{W: 8, H: 8}, Size{W: 2, H: 2}); !errors.Is(err, ErrIO) {
		t.Fatalf("inconsistent: err = %v", err)
	}
}
