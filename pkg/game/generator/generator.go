// Package generator builds playable levels procedurally, for headless runs,
// the debug server and tests.
package generator

import (
	"errors"

	"worship/pkg/engine/world"
)

// ErrTooSmall is returned for arenas that cannot hold a single room.
var ErrTooSmall = errors.New("arena too small")

// LevelGenerator is an interface for level generation algorithms
type LevelGenerator interface {
	Generate(width, height int, seed int64) (*world.Level, error)
	Name() string
}

// Available generators
var (
	BSP = &BSPGenerator{}
)

// DefaultGenerator is the default level generator
var DefaultGenerator LevelGenerator = BSP

// GenerateArena builds a width×height level with the default generator.
// The same seed always yields the same level.
func GenerateArena(width, height int, seed int64) (*world.Level, error) {
	return DefaultGenerator.Generate(width, height, seed)
}
