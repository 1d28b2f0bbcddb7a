// Package levels loads level layouts exported from the Tiled editor, either
// as JSON or TMX, into packed tile grids and spawn lists.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.json *.tmx
var LevelsFS embed.FS

// diskDir is checked before the embedded copies so edited levels can be
// picked up without a rebuild.
const diskDir = "levels"

// Load reads a level by file name and decodes it according to its extension.
func Load(name string) (*Level, error) {
	return LoadFromFS(sourceFS(name), cleanLevelPath(name))
}

// LoadFromFS decodes the level at name inside fsys.
func LoadFromFS(fsys fs.FS, name string) (*Level, error) {
	var (
		lvl *Level
		err error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		lvl, err = loadJSON(fsys, name)
	case ".tmx":
		lvl, err = loadTMX(fsys, name)
	default:
		return nil, fmt.Errorf("levels: unsupported level format %q", name)
	}
	if err != nil {
		return nil, err
	}
	lvl.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	return lvl, nil
}

// sourceFS prefers the on-disk levels directory when it has the file.
func sourceFS(name string) fs.FS {
	clean := cleanLevelPath(name)
	if _, err := os.Stat(filepath.Join(diskDir, filepath.FromSlash(clean))); err == nil {
		return os.DirFS(diskDir)
	}
	return LevelsFS
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	return s
}
