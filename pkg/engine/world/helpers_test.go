package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// tracker is a minimal entity that records the callbacks it receives.
type tracker struct {
	Base
	collisions []EntityID
	wallHits   int
	fixed      int
}

func newTracker(pos, size mgl32.Vec3, layer, mask Layer) *tracker {
	body := NewBody(pos)
	body.BoundingBox = size
	body.Layer = layer
	body.Mask = mask
	return &tracker{Base: NewBase(body)}
}

func (p *tracker) FixedUpdate(w *World, dt float32) {
	p.fixed++
	p.Base.FixedUpdate(w, dt)
}

func (p *tracker) OnCollision(w *World, other Entity) {
	p.collisions = append(p.collisions, other.Body().ID())
}

func (p *tracker) OnWallCollision(w *World) {
	p.wallHits++
}

// makeGrid builds a grid from rows of '#' (wall) and '.' (air).
func makeGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width() {
			t.Fatalf("row %d has width %d, want %d", y, len(row), g.Width())
		}
		for x, ch := range row {
			if ch == '#' {
				g.SetType(Coord{x, y}, TileWall)
			}
		}
	}
	return g
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}
