package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tileworld/config"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// sceneKeys select scenes by position, as listed in the config.
var sceneKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Manager switches between scenes. Scenes are built the first time they are
// activated and keep their state when the player switches away; scene
// changes triggered by gameplay always start the target fresh.
type Manager struct {
	res         Resources
	scenes      []*Scene
	active      int
	gravityStep float64
}

func NewManager(cfg config.Config, res Resources) *Manager {
	if res.TPS <= 0 {
		res.TPS = cfg.Window.TPS
	}
	if res.Physics == (config.Physics{}) {
		res.Physics = cfg.Physics
	}
	m := &Manager{res: res, active: -1, gravityStep: cfg.Physics.GravityStep}
	for _, sc := range cfg.Scenes {
		m.scenes = append(m.scenes, newScene(sc))
	}
	return m
}

func (m *Manager) Scenes() []*Scene {
	return append([]*Scene(nil), m.scenes...)
}

// Active returns the current scene, or nil before SetActive succeeds.
func (m *Manager) Active() *Scene {
	if m.active < 0 || m.active >= len(m.scenes) {
		return nil
	}
	return m.scenes[m.active]
}

func (m *Manager) ActiveIndex() int {
	return m.active
}

// SetActive switches to scene i, building it on first use.
func (m *Manager) SetActive(i int) error {
	if i < 0 || i >= len(m.scenes) {
		return fmt.Errorf("%w: index %d", ErrUnknownScene, i)
	}
	s := m.scenes[i]
	if !s.Built() {
		if err := s.build(m.res); err != nil {
			return err
		}
	}
	m.active = i
	log.Info("scene active", "scene", s.Name(), "index", i)
	return nil
}

func (m *Manager) SetActiveByName(name string) error {
	i, ok := m.index(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return m.SetActive(i)
}

// Restart rebuilds the named scene from its level file and activates it.
func (m *Manager) Restart(name string) error {
	i, ok := m.index(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if err := m.scenes[i].build(m.res); err != nil {
		return err
	}
	return m.SetActive(i)
}

// Reload rebuilds the active scene, picking up level and prefab edits.
func (m *Manager) Reload() error {
	s := m.Active()
	if s == nil {
		return nil
	}
	return m.Restart(s.Name())
}

func (m *Manager) index(name string) (int, bool) {
	for i, s := range m.scenes {
		if s.Name() == name {
			return i, true
		}
	}
	return -1, false
}

// Update ticks the active scene and follows any scene change it requested.
func (m *Manager) Update() error {
	s := m.Active()
	if s == nil {
		return nil
	}
	s.update()
	if next, ok := s.takeSceneChange(); ok {
		return m.Restart(next)
	}
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if s := m.Active(); s != nil {
		s.draw(screen)
	}
}

// AdjustGravity moves the active scene's gravity by steps gravity steps.
func (m *Manager) AdjustGravity(steps float64) {
	if s := m.Active(); s != nil {
		s.Physics().AdjustGravity(steps * m.gravityStep)
	}
}

func (m *Manager) FlipGravity() {
	if s := m.Active(); s != nil {
		s.Physics().FlipGravity()
	}
}

// Respawn asks the active scene to move its player back to the spawn tile.
func (m *Manager) Respawn() {
	s := m.Active()
	if s == nil {
		return
	}
	if p, ok := s.Player(); ok {
		_ = ecs.Add(s.World(), p, component.RespawnRequestComponent, &component.RespawnRequest{})
	}
}

// Advance moves a player-less scene (menu, end screen) on to its next scene.
func (m *Manager) Advance() error {
	s := m.Active()
	if s == nil || s.Config().RequiresPlayer || s.Config().Next == "" {
		return nil
	}
	return m.Restart(s.Config().Next)
}

// HandleInput applies the global scene keys: 1-4 select a scene, =/- step
// gravity, G flips it, R respawns and Enter leaves menus.
func (m *Manager) HandleInput() error {
	for i, key := range sceneKeys {
		if inpututil.IsKeyJustPressed(key) && i < len(m.scenes) {
			return m.SetActive(i)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		m.AdjustGravity(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		m.AdjustGravity(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		m.FlipGravity()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		m.Respawn()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		return m.Advance()
	}
	return nil
}
