// Package config provides YAML-based game configuration: window, tile atlas,
// physics tuning and the ordered scene list.
package config

import (
	"errors"
	"fmt"

	"github.com/milk9111/tileworld/tileset"
)

var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for the game.
type Config struct {
	Window     Window  `yaml:"window"`
	Atlas      Atlas   `yaml:"atlas"`
	Physics    Physics `yaml:"physics"`
	StartScene string  `yaml:"start_scene"`
	Scenes     []Scene `yaml:"scenes"`
	Debug      bool    `yaml:"debug"`
}

// Window defines the ebiten window and tick rate.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// Atlas locates the tile sheet among the embedded assets.
type Atlas struct {
	Path       string `yaml:"path"`
	CellWidth  int    `yaml:"cell_width"`
	CellHeight int    `yaml:"cell_height"`
	Columns    int    `yaml:"columns"`
	Rows       int    `yaml:"rows"`
}

func (a Atlas) Cell() tileset.Size {
	return tileset.Size{W: a.CellWidth, H: a.CellHeight}
}

func (a Atlas) Grid() tileset.Size {
	return tileset.Size{W: a.Columns, H: a.Rows}
}

// Physics defines world tuning. Gravity is in m/s², positive pulls down.
type Physics struct {
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	Gravity        float64 `yaml:"gravity"`
	GravityStep    float64 `yaml:"gravity_step"`
	Iterations     uint    `yaml:"iterations"`
}

// Scene binds a level file to its gameplay rules.
type Scene struct {
	Name           string `yaml:"name"`
	Level          string `yaml:"level"`
	RequiresPlayer bool   `yaml:"requires_player"`
	SpawnTile      uint32 `yaml:"spawn_tile"`
	GoalTile       uint32 `yaml:"goal_tile"`
	Next           string `yaml:"next"`
}

// SceneIndex returns the position of the named scene.
func (c Config) SceneIndex(name string) (int, bool) {
	for i, s := range c.Scenes {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Validate reports the first problem found.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	}
	if c.Atlas.Path == "" {
		return fmt.Errorf("%w: atlas path is empty", ErrInvalid)
	}
	if c.Atlas.CellWidth <= 0 || c.Atlas.CellHeight <= 0 || c.Atlas.Columns <= 0 || c.Atlas.Rows <= 0 {
		return fmt.Errorf("%w: atlas cell %dx%d grid %dx%d", ErrInvalid,
			c.Atlas.CellWidth, c.Atlas.CellHeight, c.Atlas.Columns, c.Atlas.Rows)
	}
	if c.Physics.PixelsPerMeter <= 0 {
		return fmt.Errorf("%w: pixels_per_meter %v", ErrInvalid, c.Physics.PixelsPerMeter)
	}
	if len(c.Scenes) == 0 {
		return fmt.Errorf("%w: no scenes", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Scenes))
	for _, s := range c.Scenes {
		if s.Name == "" || s.Level == "" {
			return fmt.Errorf("%w: scene %q needs a name and a level", ErrInvalid, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate scene %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
		if s.RequiresPlayer && s.SpawnTile == 0 {
			return fmt.Errorf("%w: scene %q requires a player but has no spawn_tile", ErrInvalid, s.Name)
		}
	}
	for _, s := range c.Scenes {
		if s.Next != "" && !seen[s.Next] {
			return fmt.Errorf("%w: scene %q: unknown next scene %q", ErrInvalid, s.Name, s.Next)
		}
	}
	if c.StartScene != "" && !seen[c.StartScene] {
		return fmt.Errorf("%w: unknown start_scene %q", ErrInvalid, c.StartScene)
	}
	return nil
}
