package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"

	"worship/pkg/engine/mathx"
	"worship/pkg/engine/metrics"
)

// rayHeight is the box height used for entity hit tests so that they only
// depend on the horizontal plane.
const rayHeight = 1024

// RayTrace collects what a wall raycast passed through. Nil fields are skipped.
type RayTrace struct {
	Chunks   *mapset.Set[Coord]
	Entities *EntitySet
}

// NewRayTrace returns a trace that collects both chunks and entities.
func NewRayTrace() *RayTrace {
	chunks := mapset.New[Coord]()
	entities := NewEntitySet()
	return &RayTrace{Chunks: &chunks, Entities: &entities}
}

func (rt *RayTrace) visit(c Coord, tile *Tile) {
	if rt == nil {
		return
	}
	if rt.Chunks != nil {
		rt.Chunks.Put(ChunkOf(c))
	}
	if rt.Entities != nil && tile != nil {
		tile.Occupants.Each(func(id EntityID) {
			rt.Entities.Put(id)
		})
	}
}

// RayHit is the result of a combined raycast.
type RayHit struct {
	Point  mgl32.Vec3
	Entity EntityID
}

// HitEntity reports whether the ray stopped on an entity rather than a wall.
func (h RayHit) HitEntity() bool {
	return h.Entity != NoEntity
}

// RaycastWalls steps tile by tile from origin along the horizontal part of
// dir until it enters an opaque tile or leaves the grid, and returns that
// point. The opaque tile itself is recorded in trace; tiles outside the grid
// are not. A direction without horizontal extent returns origin.
func (w *World) RaycastWalls(origin, dir mgl32.Vec3, trace *RayTrace) mgl32.Vec3 {
	metrics.Raycast()

	dir = mathx.SafeNormalize(mathx.Flatten(dir))
	tile := TileCoord(origin)

	start := w.grid.TileAt(tile)
	if start == nil {
		return origin
	}
	trace.visit(tile, start)

	if dir == (mgl32.Vec3{}) {
		return origin
	}

	inf := float32(math.Inf(1))
	stepX, sideX, deltaX := axisSetup(origin[0], tile.X, dir[0], inf)
	stepZ, sideZ, deltaZ := axisSetup(origin[2], tile.Y, dir[2], inf)

	for {
		var t float32
		if sideX < sideZ {
			t = sideX
			sideX += deltaX
			tile.X += stepX
		} else {
			t = sideZ
			sideZ += deltaZ
			tile.Y += stepZ
		}

		current := w.grid.TileAt(tile)
		if current == nil {
			return origin.Add(dir.Mul(t))
		}
		trace.visit(tile, current)
		if current.Opaque() {
			return origin.Add(dir.Mul(t))
		}
	}
}

// axisSetup returns the step sign, the distance along the ray to the first
// grid line and the distance between grid lines for one axis. Components so
// small that their reciprocal overflows never cross a grid line.
func axisSetup(origin float32, tile int, dir float32, inf float32) (step int, side, delta float32) {
	if dir == 0 {
		return 0, inf, inf
	}
	delta = float32(math.Abs(float64(1 / dir)))
	if math.IsInf(float64(delta), 0) {
		return 0, inf, inf
	}
	if dir < 0 {
		return -1, (origin - float32(tile)) * delta, delta
	}
	return 1, (float32(tile) + 1 - origin) * delta, delta
}

// RaycastEntities intersects the horizontal ray with every candidate whose
// layer is in mask and returns the nearest hit.
func (w *World) RaycastEntities(candidates []EntityID, origin, dir mgl32.Vec3, mask Layer) (mgl32.Vec3, EntityID, bool) {
	dir = mathx.SafeNormalize(mathx.Flatten(dir))
	if dir == (mgl32.Vec3{}) {
		return mgl32.Vec3{}, NoEntity, false
	}

	var (
		bestT  float32
		bestID = NoEntity
	)
	for _, id := range candidates {
		e, ok := w.entities[id]
		if !ok {
			continue
		}
		body := e.Body()
		if body.destroyed || body.Layer&mask == 0 {
			continue
		}

		box := body.BoundingBox
		box[1] = rayHeight
		half := box.Mul(0.5)
		t, hit := mathx.RayAABB(origin, dir, body.position.Sub(half), body.position.Add(half))
		if !hit {
			continue
		}
		if bestID == NoEntity || t < bestT {
			bestT = t
			bestID = id
		}
	}

	if bestID == NoEntity {
		return mgl32.Vec3{}, NoEntity, false
	}
	return origin.Add(dir.Mul(bestT)), bestID, true
}

// Raycast casts against walls and the entities found along the way, skipping
// ignore, and returns whichever hit is nearer to origin.
func (w *World) Raycast(origin, dir mgl32.Vec3, mask Layer, ignore EntityID) RayHit {
	entities := NewEntitySet()
	trace := &RayTrace{Entities: &entities}

	wallPoint := w.RaycastWalls(origin, dir, trace)
	entities.Remove(ignore)

	point, id, ok := w.RaycastEntities(SortedIDs(entities), origin, dir, mask)
	if !ok {
		return RayHit{Point: wallPoint}
	}
	if wallPoint.Sub(origin).Len() < point.Sub(origin).Len() {
		return RayHit{Point: wallPoint}
	}
	return RayHit{Point: point, Entity: id}
}

// Visibility is what a viewer can see in one frame.
type Visibility struct {
	Chunks   []Coord
	Entities []EntityID
}

// Visible sweeps columns wall rays across fov radians centered on forward
// and returns the chunks and entities they touched, both sorted.
func (w *World) Visible(eye, forward mgl32.Vec3, fov float32, columns int) Visibility {
	trace := NewRayTrace()

	if columns < 1 {
		columns = 1
	}
	half := columns / 2
	w.RaycastWalls(eye, forward, trace)
	if half > 0 {
		step := (fov / 2) / float32(half)
		for i := 1; i <= half; i++ {
			angle := step * float32(i)
			w.RaycastWalls(eye, mathx.RotateY(forward, angle), trace)
			w.RaycastWalls(eye, mathx.RotateY(forward, -angle), trace)
		}
	}

	var vis Visibility
	trace.Chunks.Each(func(c Coord) {
		vis.Chunks = append(vis.Chunks, c)
	})
	sortCoords(vis.Chunks)
	vis.Entities = SortedIDs(*trace.Entities)
	return vis
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
