package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/tileset"
)

var backgroundColor = color.RGBA{R: 0x1b, G: 0x1d, B: 0x2a, A: 0xff}

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

// Draw paints the tile layer first and then every shape, ordered by render
// layer.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(backgroundColor)

	ecs.ForEach(w, component.TileLayerComponent, func(_ ecs.Entity, layer *component.TileLayer) {
		if layer.Set == nil || layer.Image == nil {
			return
		}
		for _, tile := range layer.Set.Tiles() {
			drawTile(screen, layer.Image, tile)
		}
	})

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.ShapeComponent)
		if !ok {
			continue
		}
		drawShape(screen, t, s)
	}
}

// tileGeoM places a cell: pivot on its centre, flip and scale, rotate, then
// move the centre to the tile's world position.
func tileGeoM(tile tileset.PlacedTile) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-tile.Origin.X, -tile.Origin.Y)
	m.Scale(tile.ScaleX, tile.ScaleY)
	m.Rotate(tile.Radians())
	m.Translate(tile.Position.X, tile.Position.Y)
	return m
}

func drawTile(screen, atlas *ebiten.Image, tile tileset.PlacedTile) {
	if tile.Empty {
		return
	}
	sub, ok := atlas.SubImage(tile.Source).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = tileGeoM(tile)
	screen.DrawImage(sub, op)
}

func drawShape(screen *ebiten.Image, t *component.Transform, s *component.Shape) {
	x, y := float32(t.X), float32(t.Y)
	switch s.Kind {
	case component.ShapeCircle:
		r := float32(s.Radius)
		vector.FillCircle(screen, x, y, r, s.Color, true)
		// A spoke shows the ball's spin.
		ex := x + r*float32(math.Cos(t.Rotation))
		ey := y + r*float32(math.Sin(t.Rotation))
		vector.StrokeLine(screen, x, y, ex, ey, 1, color.Black, true)
	default:
		w, h := float32(s.Width), float32(s.Height)
		vector.FillRect(screen, x-w/2, y-h/2, w, h, s.Color, false)
	}
}
