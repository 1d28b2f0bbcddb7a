// Package save persists the player's progress between runs.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
)

const (
	appName     = "tileworld"
	progressKey = "progress"
)

// Progress is what survives a restart.
type Progress struct {
	// Scene is the last level scene the player entered.
	Scene   string  `json:"scene"`
	Gravity float64 `json:"gravity,omitempty"`
}

// backend is the part of gdata.Manager the store uses.
type backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type Store struct {
	data backend
}

// Open opens the per-user data directory for the game.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open save data: %w", err)
	}
	return &Store{data: m}, nil
}

// Load returns the saved progress, or nil if there is none.
func (s *Store) Load() (*Progress, error) {
	if s == nil || s.data == nil {
		return nil, nil
	}
	data, err := s.data.LoadItem(progressKey)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse progress: %w", err)
	}
	return &p, nil
}

func (s *Store) Save(p Progress) error {
	if s == nil || s.data == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.data.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	log.Debug("progress saved", "scene", p.Scene)
	return nil
}

// Clear forgets any saved progress.
func (s *Store) Clear() error {
	if s == nil || s.data == nil {
		return nil
	}
	return s.data.SaveItem(progressKey, nil)
}
