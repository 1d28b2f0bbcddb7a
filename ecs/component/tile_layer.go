package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileworld/tileset"
)

// TileLayer attaches a composed tile set to the level entity. Image is the
// atlas uploaded to the GPU; it is nil in headless worlds.
type TileLayer struct {
	Set   *tileset.TileSet
	Image *ebiten.Image
}

var TileLayerComponent = NewComponent[TileLayer]()

// LevelRules holds the palette ids with gameplay meaning in a level.
type LevelRules struct {
	SpawnTile uint32
	GoalTile  uint32
	Next      string
}

var LevelRulesComponent = NewComponent[LevelRules]()
