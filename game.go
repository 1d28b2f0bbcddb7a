package main

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tileworld/config"
	"github.com/milk9111/tileworld/levels"
	"github.com/milk9111/tileworld/save"
	"github.com/milk9111/tileworld/scene"
	"github.com/milk9111/tileworld/tileset"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

type Game struct {
	cfg     config.Config
	manager *scene.Manager
	store   *save.Store
	scene   int

	paused bool
	quit   bool
	ui     *ebitenui.UI

	// debug only
	watcher   *levels.Watcher
	clipboard bool
	hoverID   int64
	face      text.Face
	frames    int
}

func NewGame(cfg config.Config, manager *scene.Manager, store *save.Store) *Game {
	g := &Game{
		cfg:     cfg,
		manager: manager,
		store:   store,
		scene:   manager.ActiveIndex(),
		hoverID: -1,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
	g.ui = NewPauseUI(g)

	if cfg.Debug {
		if err := clipboard.Init(); err != nil {
			log.Warn("clipboard unavailable", "err", err)
		} else {
			g.clipboard = true
		}
		w, err := levels.NewWatcher("levels", "prefabs")
		if err != nil {
			log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	if g.frames%30 == 0 {
		ebiten.SetWindowTitle(windowTitle(g.cfg.Window.Title, ebiten.ActualFPS()))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if g.cfg.Debug {
		g.updateDebug()
	}

	if err := g.manager.HandleInput(); err != nil {
		log.Error("scene input", "err", err)
	}
	if err := g.manager.Update(); err != nil {
		return err
	}
	g.trackProgress()
	return nil
}

// trackProgress saves whenever the player enters a level scene.
func (g *Game) trackProgress() {
	i := g.manager.ActiveIndex()
	if i == g.scene {
		return
	}
	g.scene = i
	s := g.manager.Active()
	if s == nil || !s.Config().RequiresPlayer {
		return
	}
	p := save.Progress{Scene: s.Name()}
	if pw := s.Physics(); pw != nil {
		p.Gravity = pw.Gravity()
	}
	if err := g.store.Save(p); err != nil {
		log.Warn("could not save progress", "err", err)
	}
}

func (g *Game) updateDebug() {
	if g.watcher != nil {
		if changed := g.watcher.Drain(); len(changed) > 0 {
			log.Info("reloading scene", "files", changed)
			if err := g.manager.Reload(); err != nil {
				log.Error("reload failed", "err", err)
			}
		}
	}

	g.hoverID = -1
	if s := g.manager.Active(); s != nil {
		x, y := ebiten.CursorPosition()
		g.hoverID = hoveredID(s.TileSet(), float64(x), float64(y))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.hoverID >= 0 {
		if g.clipboard {
			clipboard.Write(clipboard.FmtText, []byte(strconv.FormatInt(g.hoverID, 10)))
		}
		log.Info("tile id", "raw", g.hoverID, "tile", tileset.Decode(uint32(g.hoverID)))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.manager.Draw(screen)

	if g.cfg.Debug {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(g.cfg.Window.Height-20))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 0xff, G: 0xe0, B: 0x60, A: 0xff})
		text.Draw(screen, inspectorText(g.hoverID), g.face, op)
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Resume closes the pause menu.
func (g *Game) Resume() {
	g.paused = false
}

// MainMenu restarts the start scene and closes the pause menu.
func (g *Game) MainMenu() {
	if err := g.manager.Restart(g.cfg.StartScene); err != nil {
		log.Error("main menu", "err", err)
	}
	g.paused = false
}

// Quit ends the game on the next tick.
func (g *Game) Quit() {
	g.quit = true
}

func windowTitle(title string, fps float64) string {
	return fmt.Sprintf("%s | FPS: %.0f", title, fps)
}

// hoveredID returns the packed id of the tile under the cursor, or -1.
func hoveredID(ts *tileset.TileSet, x, y float64) int64 {
	if ts == nil {
		return -1
	}
	return ts.RawIDAt(tileset.Vec{X: x, Y: y})
}

func inspectorText(id int64) string {
	if id < 0 {
		return "tile: -"
	}
	t := tileset.Decode(uint32(id))
	return fmt.Sprintf("tile: %d (palette %d, %s) [C to copy]", id, t.Palette, t.Orientation())
}
