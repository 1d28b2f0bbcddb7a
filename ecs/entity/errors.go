package entity

import (
	"errors"
	"fmt"
)

var (
	errNilWorld = errors.New("world is nil")
	// ErrNoSpawn is returned when a level has no tile matching its spawn id.
	ErrNoSpawn = errors.New("entity: spawn tile not found")
)

func wrapBuild(name string, err error) error {
	return fmt.Errorf("build %s: %w", name, err)
}
