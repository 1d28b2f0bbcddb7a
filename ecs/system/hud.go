package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/physics"
	"golang.org/x/image/font/basicfont"
)

// HUDSystem prints the frame rate, gravity and scene name in the corner.
type HUDSystem struct {
	scene string
	world *physics.World
	face  text.Face
}

func NewHUDSystem(scene string, world *physics.World) *HUDSystem {
	return &HUDSystem{
		scene: scene,
		world: world,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

func (h *HUDSystem) Update(*ecs.World) {}

func (h *HUDSystem) Draw(_ *ecs.World, screen *ebiten.Image) {
	if h == nil || screen == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 6)
	op.LineSpacing = 15
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, h.Text(ebiten.ActualFPS()), h.face, op)
}

// Text formats the HUD lines.
func (h *HUDSystem) Text(fps float64) string {
	g := 0.0
	if h.world != nil {
		g = h.world.Gravity()
	}
	return fmt.Sprintf("FPS: %.0f\nGravity: %.1f\nScene: %s", fps, g, h.scene)
}
