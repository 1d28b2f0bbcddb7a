// tileworld is a small gravity-toggling platformer built on tile-set levels.
//
// Usage:
//
//	tileworld [--config path] [--scene name] [--continue] [--debug]
//
// Keys: 1-4 select a scene, =/- step gravity, G flips it, R respawns,
// Enter leaves menus and Esc pauses.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileworld/assets"
	"github.com/milk9111/tileworld/config"
	"github.com/milk9111/tileworld/save"
	"github.com/milk9111/tileworld/scene"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagScene  string
	flagDebug  bool
	flagResume bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tileworld",
	Short:         "Tile-set platformer with switchable gravity",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to config file (default: ~/.tileworld/config.yaml, ./configs/config.yaml)")
	rootCmd.Flags().StringVar(&flagScene, "scene", "", "Scene to start in (default: start_scene from config)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable the tile inspector and hot reload")
	rootCmd.Flags().BoolVar(&flagResume, "continue", false, "Start in the last level reached")
}

func run(cmd *cobra.Command, args []string) error {
	log.SetPrefix("tileworld")
	log.SetReportTimestamp(true)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.Debug = true
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	atlas, err := assets.LoadAtlas(cfg.Atlas.Path, cfg.Atlas.Cell(), cfg.Atlas.Grid())
	if err != nil {
		return fmt.Errorf("load atlas: %w", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	manager := scene.NewManager(cfg, scene.Resources{
		Atlas:       atlas,
		Image:       ebiten.NewImageFromImage(atlas.Image()),
		TargetWidth: float64(cfg.Window.Width),
	})

	store, err := save.Open()
	if err != nil {
		log.Warn("progress will not be saved", "err", err)
	}

	start := cfg.StartScene
	var progress *save.Progress
	if flagResume {
		if progress, err = store.Load(); err != nil {
			log.Warn("could not load progress", "err", err)
		} else if progress != nil {
			start = progress.Scene
		}
	}
	if flagScene != "" {
		start = flagScene
	}
	if err := manager.SetActiveByName(start); err != nil {
		return err
	}
	if progress != nil && progress.Scene == start && progress.Gravity != 0 {
		manager.Active().Physics().SetGravity(progress.Gravity)
	}

	game := NewGame(cfg, manager, store)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
