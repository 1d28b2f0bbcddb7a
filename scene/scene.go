// Package scene owns the game's scenes: each pairs a level with its own ECS
// world, physics world and system schedule.
package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileworld/config"
	"github.com/milk9111/tileworld/ecs"
	"github.com/milk9111/tileworld/ecs/component"
	"github.com/milk9111/tileworld/ecs/entity"
	"github.com/milk9111/tileworld/ecs/system"
	"github.com/milk9111/tileworld/levels"
	"github.com/milk9111/tileworld/physics"
	"github.com/milk9111/tileworld/tileset"
)

// Resources are shared by every scene.
type Resources struct {
	Atlas *tileset.Atlas
	// Image is the atlas on the GPU; nil when Headless.
	Image       *ebiten.Image
	TargetWidth float64
	TPS         int
	Physics     config.Physics
	// LoadLevel defaults to levels.Load.
	LoadLevel func(name string) (*levels.Level, error)
	// Headless leaves out the systems that read input or draw.
	Headless bool
}

type Scene struct {
	cfg config.Scene

	world     *ecs.World
	physics   *physics.World
	scheduler *ecs.Scheduler
	levelEnt  ecs.Entity
	built     bool
}

func newScene(cfg config.Scene) *Scene {
	return &Scene{cfg: cfg}
}

func (s *Scene) Name() string {
	return s.cfg.Name
}

func (s *Scene) Config() config.Scene {
	return s.cfg
}

// Built reports whether the scene has been started.
func (s *Scene) Built() bool {
	return s.built
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) Physics() *physics.World {
	return s.physics
}

// TileSet returns the composed level, or nil before the scene is built.
func (s *Scene) TileSet() *tileset.TileSet {
	if !s.built {
		return nil
	}
	layer, ok := ecs.Get(s.world, s.levelEnt, component.TileLayerComponent)
	if !ok {
		return nil
	}
	return layer.Set
}

// Player returns the player entity if this scene has one.
func (s *Scene) Player() (ecs.Entity, bool) {
	if !s.built {
		return 0, false
	}
	return s.world.First(component.PlayerTagComponent.Kind())
}

// build loads the level and creates a fresh world, replacing any previous
// state. On error the previous state is kept.
func (s *Scene) build(res Resources) error {
	load := res.LoadLevel
	if load == nil {
		load = levels.Load
	}
	lvl, err := load(s.cfg.Level)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.cfg.Name, err)
	}

	world := ecs.NewWorld()
	pw := physics.New(physics.Settings{
		PixelsPerMeter: res.Physics.PixelsPerMeter,
		Gravity:        res.Physics.Gravity,
		Iterations:     res.Physics.Iterations,
	})

	levelEnt, err := entity.LoadLevelToWorld(world, entity.LevelParams{
		Level:       lvl,
		Atlas:       res.Atlas,
		Image:       res.Image,
		TargetWidth: res.TargetWidth,
		Physics:     pw,
		Rules: component.LevelRules{
			SpawnTile: s.cfg.SpawnTile,
			GoalTile:  s.cfg.GoalTile,
			Next:      s.cfg.Next,
		},
	})
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.cfg.Name, err)
	}
	if s.cfg.RequiresPlayer {
		if _, err := entity.SpawnPlayer(world, levelEnt); err != nil {
			return fmt.Errorf("scene %s: %w", s.cfg.Name, err)
		}
	}

	s.world = world
	s.physics = pw
	s.levelEnt = levelEnt
	s.scheduler = newScheduler(s.cfg.Name, pw, res)
	s.built = true
	log.Info("scene built", "scene", s.cfg.Name, "static_bodies", pw.StaticBodies())
	return nil
}

// newScheduler lists the systems in tick order.
func newScheduler(name string, pw *physics.World, res Resources) *ecs.Scheduler {
	sched := ecs.NewScheduler()
	if !res.Headless {
		sched.Add(system.NewInputSystem())
	}
	sched.Add(system.NewPlayerControllerSystem(pw))
	sched.Add(system.NewPatrolSystem(pw.PixelsPerMeter()))
	sched.Add(system.NewPhysicsSystem(pw, res.TPS))
	sched.Add(system.NewRespawnSystem(pw))
	sched.Add(system.NewGoalSystem(pw))
	if !res.Headless {
		sched.Add(system.NewRenderSystem())
		sched.Add(system.NewHUDSystem(name, pw))
	}
	return sched
}

func (s *Scene) update() {
	if !s.built {
		return
	}
	s.scheduler.Update(s.world)
}

func (s *Scene) draw(screen *ebiten.Image) {
	if !s.built {
		return
	}
	s.scheduler.Draw(s.world, screen)
}

// takeSceneChange removes and returns a pending scene change request.
func (s *Scene) takeSceneChange() (string, bool) {
	if !s.built {
		return "", false
	}
	for _, e := range s.world.Query(component.SceneChangeRequestComponent.Kind()) {
		req, ok := ecs.Get(s.world, e, component.SceneChangeRequestComponent)
		ecs.Remove(s.world, e, component.SceneChangeRequestComponent)
		if ok && req.Scene != "" {
			return req.Scene, true
		}
	}
	return "", false
}
