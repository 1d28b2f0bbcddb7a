package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

const fileName = "config.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.tileworld/config.yaml -> ./configs/config.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// A custom path that cannot be read is an error, not a fallback.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parse(customPath, data)
	}

	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return parse(path, data)
	}

	return parse("embedded default", defaultConfigYAML)
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := parse("embedded default", defaultConfigYAML)
	if err != nil {
		panic(err)
	}
	return cfg
}

func parse(source string, data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", source, err)
	}
	log.Debug("loaded config", "source", source, "scenes", len(cfg.Scenes))
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tileworld", filename)
}
