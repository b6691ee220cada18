// Package world implements the tile-based level, its spatial index, static and
// dynamic lighting, ray casting and the entity movement resolver.
package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TileType is the kind of a tile.
type TileType uint8

const (
	TileAir TileType = iota
	TileWall
)

// String returns the string representation of a tile type
func (t TileType) String() string {
	switch t {
	case TileAir:
		return "air"
	case TileWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Opaque reports whether the tile type blocks light, rays and movement.
func (t TileType) Opaque() bool {
	return t == TileWall
}

// Coord is a tile coordinate. X maps to world X, Y maps to world Z.
type Coord struct {
	X, Y int
}

// Add returns c offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

// TileCoord returns the tile containing a world position.
func TileCoord(pos mgl32.Vec3) Coord {
	return Coord{int(math.Floor(float64(pos[0]))), int(math.Floor(float64(pos[2])))}
}

// Center returns the world position of the middle of the tile at height 0.5.
func (c Coord) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X) + 0.5, 0.5, float32(c.Y) + 0.5}
}

// Tile is a single cell of the level grid.
type Tile struct {
	Type TileType

	// Texture indices are opaque to the simulation and passed through to renderers.
	TextureWall    uint16
	TextureFloor   uint16
	TextureCeiling uint16

	// Light is the baked static light accumulated by radiosity.
	Light mgl32.Vec3

	// Occupants holds every entity whose registration window covers this tile.
	Occupants EntitySet
}

// Opaque reports whether the tile blocks light, rays and movement.
func (t *Tile) Opaque() bool {
	return t == nil || t.Type.Opaque()
}
