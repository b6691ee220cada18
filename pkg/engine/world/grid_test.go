package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGrid_OutOfBounds(t *testing.T) {
	g := NewGrid(4, 3)
	outside := []Coord{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}, {-5, -5}}
	for _, c := range outside {
		if g.TileAt(c) != nil {
			t.Errorf("TileAt(%v) = tile, want nil", c)
		}
		if !g.IsOpaque(c) {
			t.Errorf("IsOpaque(%v) = false, want true", c)
		}
	}
}

func TestGrid_InBoundsAir(t *testing.T) {
	g := NewGrid(4, 3)
	g.ForEachTile(func(c Coord, tile *Tile) {
		if g.IsOpaque(c) {
			t.Errorf("IsOpaque(%v) = true on fresh grid, want false", c)
		}
	})
	g.SetType(Coord{2, 1}, TileWall)
	if !g.IsOpaque(Coord{2, 1}) {
		t.Error("IsOpaque(2,1) = false after SetType wall, want true")
	}
	if g.SetType(Coord{9, 9}, TileWall) {
		t.Error("SetType(9,9) = true, want false out of bounds")
	}
}

func TestChunkOf(t *testing.T) {
	tests := []struct {
		in, want Coord
	}{
		{Coord{0, 0}, Coord{0, 0}},
		{Coord{15, 15}, Coord{0, 0}},
		{Coord{16, 3}, Coord{1, 0}},
		{Coord{33, 47}, Coord{2, 2}},
		{Coord{-1, -16}, Coord{-1, -1}},
		{Coord{-17, 0}, Coord{-2, 0}},
	}
	for _, tt := range tests {
		if got := ChunkOf(tt.in); got != tt.want {
			t.Errorf("ChunkOf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func occupiedTiles(g *Grid, id EntityID) map[Coord]bool {
	out := make(map[Coord]bool)
	g.ForEachTile(func(c Coord, tile *Tile) {
		if tile.Occupants.Has(id) {
			out[c] = true
		}
	})
	return out
}

func assertWindow(t *testing.T, g *Grid, id EntityID, pos mgl32.Vec3) {
	t.Helper()
	center := TileCoord(pos)
	got := occupiedTiles(g, id)
	want := make(map[Coord]bool)
	for y := center.Y - OccupantRadius; y <= center.Y+OccupantRadius; y++ {
		for x := center.X - OccupantRadius; x <= center.X+OccupantRadius; x++ {
			if g.InBounds(Coord{x, y}) {
				want[Coord{x, y}] = true
			}
		}
	}
	if len(got) != len(want) {
		t.Fatalf("entity %d occupies %d tiles at %v, want %d", id, len(got), pos, len(want))
	}
	for c := range want {
		if !got[c] {
			t.Errorf("entity %d missing from tile %v at %v", id, c, pos)
		}
	}
}

func TestOccupants_FollowPosition(t *testing.T) {
	w := New(NewGrid(10, 10))
	p := newTracker(mgl32.Vec3{5.5, 0.5, 5.5}, mgl32.Vec3{0.5, 0.5, 0.5}, 0, 0)
	id := w.Spawn(p)
	assertWindow(t, w.Grid(), id, p.Body().Position())

	moves := []mgl32.Vec3{
		{2.2, 0.5, 7.9},
		{0.1, 0.5, 0.1},
		{9.9, 0.5, 9.9},
		{5.0, 0.5, 5.0},
	}
	for _, pos := range moves {
		w.SetPosition(id, pos)
		assertWindow(t, w.Grid(), id, pos)
	}
}

func TestOccupants_RemovedOnSweep(t *testing.T) {
	w := New(NewGrid(6, 6))
	p := newTracker(mgl32.Vec3{3.5, 0.5, 3.5}, mgl32.Vec3{0.5, 0.5, 0.5}, 0, 0)
	id := w.Spawn(p)

	p.Destroy(w)
	w.FixedUpdate(1.0 / 60)

	if n := len(occupiedTiles(w.Grid(), id)); n != 0 {
		t.Errorf("destroyed entity still occupies %d tiles", n)
	}
	if _, ok := w.Entity(id); ok {
		t.Error("Entity(id) found after sweep, want removed")
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
}
