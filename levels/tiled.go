package levels

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

type tiledMap struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	TileWidth  int            `json:"tilewidth"`
	TileHeight int            `json:"tileheight"`
	Layers     []tiledLayer   `json:"layers"`
	Tilesets   []tiledTileset `json:"tilesets"`
}

type tiledTileset struct {
	FirstGID uint32 `json:"firstgid"`
	Source   string `json:"source,omitempty"`
}

type tiledLayer struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Data    []uint32      `json:"data,omitempty"` // uint32 keeps the flip bits
	Objects []tiledObject `json:"objects,omitempty"`
	Layers  []tiledLayer  `json:"layers,omitempty"`
}

type tiledObject struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Class      string          `json:"class"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Properties []tiledProperty `json:"properties,omitempty"`
}

type tiledProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func loadJSON(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*Level, error) {
	var m tiledMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}

	layers := flattenLayers(m.Layers)
	tiles := pickTileLayer(layers)
	if tiles == nil {
		return nil, fmt.Errorf("levels: no tile layer")
	}

	var firstGID uint32 = 1
	if len(m.Tilesets) > 0 {
		firstGID = m.Tilesets[0].FirstGID
	}

	width, height := tiles.Width, tiles.Height
	if width == 0 && height == 0 {
		width, height = m.Width, m.Height
	}
	grid, err := gridFromData(tiles.Data, width, height, firstGID)
	if err != nil {
		return nil, fmt.Errorf("levels: layer %q: %w", tiles.Name, err)
	}

	lvl := &Level{Grid: grid, TileWidth: m.TileWidth, TileHeight: m.TileHeight}
	for _, l := range layers {
		if l.Type != "objectgroup" {
			continue
		}
		for _, o := range l.Objects {
			lvl.Spawns = append(lvl.Spawns, o.spawn())
		}
	}
	return lvl, nil
}

// flattenLayers expands group layers in draw order.
func flattenLayers(layers []tiledLayer) []tiledLayer {
	var out []tiledLayer
	for _, l := range layers {
		if l.Type == "group" {
			out = append(out, flattenLayers(l.Layers)...)
			continue
		}
		out = append(out, l)
	}
	return out
}

func pickTileLayer(layers []tiledLayer) *tiledLayer {
	var first *tiledLayer
	for i := range layers {
		if layers[i].Type != "tilelayer" {
			continue
		}
		if layers[i].Name == TileLayerName {
			return &layers[i]
		}
		if first == nil {
			first = &layers[i]
		}
	}
	return first
}

func (o tiledObject) spawn() Spawn {
	kind := o.Class
	if kind == "" {
		kind = o.Type
	}
	s := Spawn{
		Name:   o.Name,
		Type:   kind,
		X:      o.X,
		Y:      o.Y,
		Width:  o.Width,
		Height: o.Height,
	}
	for _, p := range o.Properties {
		v, ok := p.Value.(float64)
		if !ok {
			continue
		}
		if s.Props == nil {
			s.Props = make(map[string]float64)
		}
		s.Props[p.Name] = v
	}
	return s
}
