package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRaycastWalls_AlwaysHits(t *testing.T) {
	w := New(NewGrid(5, 5))
	origin := mgl32.Vec3{2.3, 0.5, 2.7}

	for i := 0; i < 64; i++ {
		angle := float64(i) * 2 * math.Pi / 64
		dir := mgl32.Vec3{float32(math.Cos(angle)), 0, float32(math.Sin(angle))}

		got := w.RaycastWalls(origin, dir, nil)
		if got[0] < -1e-4 || got[0] > 5+1e-4 || got[2] < -1e-4 || got[2] > 5+1e-4 {
			t.Errorf("RaycastWalls(angle %d) = %v, want a point on the grid boundary", i, got)
		}
		onEdge := approx(got[0], 0) || approx(got[0], 5) || approx(got[2], 0) || approx(got[2], 5)
		if !onEdge {
			t.Errorf("RaycastWalls(angle %d) = %v, want a point on the grid boundary", i, got)
		}
		if got[1] != origin[1] {
			t.Errorf("RaycastWalls(angle %d) y = %v, want %v", i, got[1], origin[1])
		}
	}
}

func TestRaycastWalls_StopsAtWall(t *testing.T) {
	w := New(makeGrid(t,
		".....",
		"....#",
		".....",
	))
	trace := NewRayTrace()
	got := w.RaycastWalls(mgl32.Vec3{0.5, 0.5, 1.5}, mgl32.Vec3{1, 0, 0}, trace)
	if !approxVec(got, mgl32.Vec3{4, 0.5, 1.5}) {
		t.Errorf("RaycastWalls = %v, want (4, 0.5, 1.5)", got)
	}
	if !trace.Chunks.Has(Coord{0, 0}) || trace.Chunks.Size() != 1 {
		t.Errorf("trace chunks = %d entries, want only chunk (0,0)", trace.Chunks.Size())
	}
}

func TestRaycastWalls_SubnormalComponent(t *testing.T) {
	w := New(NewGrid(5, 5))
	got := w.RaycastWalls(mgl32.Vec3{2, 0.5, 2}, mgl32.Vec3{-1, 0, -1e-45}, nil)
	for i, v := range got {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("RaycastWalls(-x, subnormal z)[%d] = %v, want a finite point", i, v)
		}
	}
	if !approxVec(got, mgl32.Vec3{0, 0.5, 2}) {
		t.Errorf("RaycastWalls(-x, subnormal z) = %v, want (0, 0.5, 2)", got)
	}
}

func TestRaycastWalls_VerticalDirection(t *testing.T) {
	w := New(NewGrid(3, 3))
	origin := mgl32.Vec3{1.5, 0.5, 1.5}
	if got := w.RaycastWalls(origin, mgl32.Vec3{0, 1, 0}, nil); got != origin {
		t.Errorf("RaycastWalls(up) = %v, want origin", got)
	}
}

func TestRaycastWalls_AxisAligned(t *testing.T) {
	w := New(NewGrid(4, 4))
	got := w.RaycastWalls(mgl32.Vec3{1, 0.5, 1}, mgl32.Vec3{0, 0, -1}, nil)
	if !approxVec(got, mgl32.Vec3{1, 0.5, 0}) {
		t.Errorf("RaycastWalls(-z from grid corner) = %v, want (1, 0.5, 0)", got)
	}
}

func TestRaycast_EntityAndWall(t *testing.T) {
	w := New(makeGrid(t,
		".......",
		"......#",
		".......",
	))
	target := newTracker(mgl32.Vec3{3.5, 0.5, 1.5}, mgl32.Vec3{0.5, 0.5, 0.5}, LayerEnemy, 0)
	shooter := newTracker(mgl32.Vec3{0.5, 0.5, 1.5}, mgl32.Vec3{0.5, 0.5, 0.5}, LayerPlayer, 0)
	targetID := w.Spawn(target)
	shooterID := w.Spawn(shooter)

	origin := shooter.Body().Position()
	dir := mgl32.Vec3{1, 0, 0}

	tests := []struct {
		name       string
		mask       Layer
		ignore     EntityID
		wantEntity EntityID
		wantPoint  mgl32.Vec3
	}{
		{"hits enemy", LayerEnemy, shooterID, targetID, mgl32.Vec3{3.25, 0.5, 1.5}},
		{"mask filters enemy", LayerPickup, shooterID, NoEntity, mgl32.Vec3{6, 0.5, 1.5}},
		{"ignored target", LayerEnemy, targetID, NoEntity, mgl32.Vec3{6, 0.5, 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := w.Raycast(origin, dir, tt.mask, tt.ignore)
			if hit.Entity != tt.wantEntity {
				t.Errorf("Raycast entity = %d, want %d", hit.Entity, tt.wantEntity)
			}
			if !approxVec(hit.Point, tt.wantPoint) {
				t.Errorf("Raycast point = %v, want %v", hit.Point, tt.wantPoint)
			}
		})
	}
}

func TestRaycast_WallCloserThanEntity(t *testing.T) {
	w := New(makeGrid(t,
		".....",
		"..#..",
		".....",
	))
	// Registered on the wall tile through its occupant window, but behind it.
	behind := newTracker(mgl32.Vec3{3.5, 0.5, 1.5}, mgl32.Vec3{0.5, 0.5, 0.5}, LayerEnemy, 0)
	w.Spawn(behind)

	hit := w.Raycast(mgl32.Vec3{0.5, 0.5, 1.5}, mgl32.Vec3{1, 0, 0}, LayerEnemy, NoEntity)
	if hit.HitEntity() {
		t.Errorf("Raycast hit entity %d through a wall", hit.Entity)
	}
	if !approxVec(hit.Point, mgl32.Vec3{2, 0.5, 1.5}) {
		t.Errorf("Raycast point = %v, want (2, 0.5, 1.5)", hit.Point)
	}
}

func TestRaycastEntities_Nearest(t *testing.T) {
	w := New(NewGrid(10, 3))
	far := w.Spawn(newTracker(mgl32.Vec3{7.5, 0.5, 1.5}, mgl32.Vec3{0.5, 0.5, 0.5}, LayerEnemy, 0))
	near := w.Spawn(newTracker(mgl32.Vec3{4.5, 0.5, 1.5}, mgl32.Vec3{0.5, 0.5, 0.5}, LayerEnemy, 0))

	_, id, ok := w.RaycastEntities([]EntityID{far, near}, mgl32.Vec3{0.5, 0.5, 1.5}, mgl32.Vec3{1, 0, 0}, LayerEnemy)
	if !ok || id != near {
		t.Errorf("RaycastEntities = (%d, %v), want (%d, true)", id, ok, near)
	}

	// Height is ignored: a ray far above the box still hits it.
	_, id, ok = w.RaycastEntities([]EntityID{near}, mgl32.Vec3{0.5, 50, 1.5}, mgl32.Vec3{1, 0, 0}, LayerEnemy)
	if !ok || id != near {
		t.Errorf("RaycastEntities from above = (%d, %v), want (%d, true)", id, ok, near)
	}

	if _, _, ok := w.RaycastEntities(nil, mgl32.Vec3{0.5, 0.5, 1.5}, mgl32.Vec3{1, 0, 0}, LayerEnemy); ok {
		t.Error("RaycastEntities(nil) = hit, want miss")
	}
}

func TestVisible(t *testing.T) {
	w := New(makeGrid(t,
		"................................",
		"................................",
		"................................",
	))
	ahead := w.Spawn(newTracker(mgl32.Vec3{20.5, 0.5, 1.5}, mgl32.Vec3{0.5, 0.5, 0.5}, LayerEnemy, 0))

	vis := w.Visible(mgl32.Vec3{1.5, 0.5, 1.5}, mgl32.Vec3{1, 0, 0}, math.Pi/2, 32)
	if len(vis.Chunks) != 2 || vis.Chunks[0] != (Coord{0, 0}) || vis.Chunks[1] != (Coord{1, 0}) {
		t.Errorf("Visible chunks = %v, want [(0,0) (1,0)]", vis.Chunks)
	}
	found := false
	for _, id := range vis.Entities {
		if id == ahead {
			found = true
		}
	}
	if !found {
		t.Errorf("Visible entities = %v, want to include %d", vis.Entities, ahead)
	}
}
