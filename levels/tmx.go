package levels

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
	"github.com/milk9111/tileworld/tileset"
)

func loadTMX(fsys fs.FS, name string) (*Level, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load TMX %s: %w", name, err)
	}

	layer := pickTMXLayer(levelMap.Layers)
	if layer == nil {
		return nil, fmt.Errorf("levels: %s: no tile layer", name)
	}

	data := make([]uint32, len(layer.Tiles))
	for i, tile := range layer.Tiles {
		data[i] = packLayerTile(tile)
	}
	grid, err := gridFromData(data, levelMap.Width, levelMap.Height, 1)
	if err != nil {
		return nil, fmt.Errorf("levels: %s layer %q: %w", name, layer.Name, err)
	}

	lvl := &Level{Grid: grid, TileWidth: levelMap.TileWidth, TileHeight: levelMap.TileHeight}
	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			s := Spawn{
				Name:   o.Name,
				Type:   o.Type,
				X:      o.X,
				Y:      o.Y,
				Width:  o.Width,
				Height: o.Height,
			}
			for _, p := range o.Properties {
				if p.Type != "float" && p.Type != "int" {
					continue
				}
				if s.Props == nil {
					s.Props = make(map[string]float64)
				}
				s.Props[p.Name] = o.Properties.GetFloat(p.Name)
			}
			lvl.Spawns = append(lvl.Spawns, s)
		}
	}
	return lvl, nil
}

func pickTMXLayer(layers []*tiled.Layer) *tiled.Layer {
	for _, l := range layers {
		if l.Name == TileLayerName {
			return l
		}
	}
	if len(layers) > 0 {
		return layers[0]
	}
	return nil
}

// packLayerTile turns go-tiled's resolved tile back into a packed id whose
// palette is 1-based within the tile's own tileset.
func packLayerTile(tile *tiled.LayerTile) uint32 {
	if tile == nil || tile.IsNil() {
		return 0
	}
	return tileset.TileID{
		Palette: tile.ID + 1,
		FlipH:   tile.HorizontalFlip,
		FlipV:   tile.VerticalFlip,
		FlipD:   tile.DiagonalFlip,
	}.Pack()
}
