package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// OccupantRadius is how many tiles around its position an entity registers in.
const OccupantRadius = 1

// ChunkSize is the edge length of a render chunk in tiles.
const ChunkSize = 16

// Grid is the fixed-size tile map. Anything outside the grid is solid wall.
type Grid struct {
	tiles  []Tile
	width  int
	height int
}

// NewGrid creates a grid of air tiles with the given dimensions
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid size %dx%d", width, height))
	}
	g := &Grid{
		tiles:  make([]Tile, width*height),
		width:  width,
		height: height,
	}
	for i := range g.tiles {
		g.tiles[i].Occupants = NewEntitySet()
	}
	return g
}

// Width returns the number of tiles along X
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of tiles along Z
func (g *Grid) Height() int {
	return g.height
}

// InBounds checks if a coordinate is within grid bounds
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// TileAt returns the tile at the given coordinate, or nil if out of bounds
func (g *Grid) TileAt(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return &g.tiles[c.Y*g.width+c.X]
}

// IsOpaque reports whether the coordinate is a wall or outside the grid
func (g *Grid) IsOpaque(c Coord) bool {
	return g.TileAt(c).Opaque()
}

// SetType changes the type of an in-bounds tile. It returns false when c is out of bounds.
func (g *Grid) SetType(c Coord, t TileType) bool {
	tile := g.TileAt(c)
	if tile == nil {
		return false
	}
	tile.Type = t
	return true
}

// ForEachTile calls fn for every tile in row-major order
func (g *Grid) ForEachTile(fn func(c Coord, t *Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Coord{x, y}, &g.tiles[y*g.width+x])
		}
	}
}

// Occupants returns the ids registered at c in ascending order.
func (g *Grid) Occupants(c Coord) []EntityID {
	tile := g.TileAt(c)
	if tile == nil {
		return nil
	}
	return SortedIDs(tile.Occupants)
}

// addOccupant registers id in every tile within OccupantRadius of pos.
func (g *Grid) addOccupant(id EntityID, pos mgl32.Vec3) {
	g.forEachInWindow(pos, func(t *Tile) {
		t.Occupants.Put(id)
	})
}

// removeOccupant is the inverse of addOccupant for the same position.
func (g *Grid) removeOccupant(id EntityID, pos mgl32.Vec3) {
	g.forEachInWindow(pos, func(t *Tile) {
		t.Occupants.Remove(id)
	})
}

func (g *Grid) forEachInWindow(pos mgl32.Vec3, fn func(t *Tile)) {
	center := TileCoord(pos)
	for y := center.Y - OccupantRadius; y <= center.Y+OccupantRadius; y++ {
		for x := center.X - OccupantRadius; x <= center.X+OccupantRadius; x++ {
			if tile := g.TileAt(Coord{x, y}); tile != nil {
				fn(tile)
			}
		}
	}
}

// ChunkOf returns the chunk containing the tile at c.
func ChunkOf(c Coord) Coord {
	return Coord{floorDiv(c.X, ChunkSize), floorDiv(c.Y, ChunkSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
