package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/mathx"
	"worship/pkg/engine/metrics"
)

// wallMargin is the number of extra tiles scanned around a moving body.
const wallMargin = 2

// Integrate applies gravity, moves the entity by its velocity and applies friction.
func (w *World) Integrate(id EntityID, dt float32) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	body := e.Body()

	if body.Gravity {
		body.ApplyForce(mgl32.Vec3{0, -Gravity, 0}, dt)
	}

	w.Move(id, body.Velocity, dt)

	body.Velocity = body.Velocity.Sub(body.Velocity.Mul(body.Friction))
}

// Move displaces the entity by amount*dt one axis at a time (x, y, z). An
// axis blocked by a wall or a blocking entity is reverted and its velocity
// reflected by the bounciness.
func (w *World) Move(id EntityID, amount mgl32.Vec3, dt float32) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	body := e.Body()

	for axis := 0; axis < 3; axis++ {
		pos := body.position
		pos[axis] += amount[axis] * dt
		w.SetPosition(id, pos)

		collision, wall := w.entityCollision(e)
		if !collision {
			wall = w.wallCollision(body)
			collision = wall
		}
		if !collision {
			continue
		}

		pos = body.position
		pos[axis] -= amount[axis] * dt
		w.SetPosition(id, pos)
		body.Velocity[axis] *= -body.Bounciness

		if wall {
			metrics.Collision(metrics.KindWall)
			e.OnWallCollision(w)
		} else {
			metrics.Collision(metrics.KindEntity)
		}
	}
}

// entityCollision tests e against the occupants of the single tile at its
// position, firing callbacks in both directions. Only the tile containing the
// position is inspected, so bodies centered more than OccupantRadius tiles
// away are never tested.
func (w *World) entityCollision(e Entity) (collision, wall bool) {
	body := e.Body()
	for _, otherID := range w.grid.Occupants(TileCoord(body.position)) {
		if otherID == body.id {
			continue
		}
		other, ok := w.entities[otherID]
		if !ok {
			continue
		}
		ob := other.Body()
		if ob.destroyed {
			continue
		}
		if !mathx.IntersectAABB(body.position, body.BoundingBox, ob.position, ob.BoundingBox) {
			continue
		}

		if body.Interacts(ob) {
			w.notify(e, other)
			if ob.Blocking {
				collision = true
			}
		}
		if ob.Interacts(body) {
			w.notify(other, e)
		}
		if collision {
			return true, false
		}
	}
	return false, false
}

// notify calls receiver.OnCollision(other) at most once per tick.
func (w *World) notify(receiver, other Entity) {
	c := contact{receiver.Body().id, other.Body().id}
	if w.contacts.Has(c) {
		return
	}
	w.contacts.Put(c)
	receiver.OnCollision(w, other)
}

// wallCollision reports whether the body leaves the vertical play space or
// overlaps a wall tile near its position.
func (w *World) wallCollision(body *Body) bool {
	half := body.BoundingBox[1] / 2
	if body.position[1] < half || body.position[1] > 1-half {
		return true
	}

	center := TileCoord(body.position)
	rangeX := int(body.BoundingBox[0]) + wallMargin
	rangeZ := int(body.BoundingBox[2]) + wallMargin
	unit := mgl32.Vec3{1, 1, 1}

	for z := center.Y - rangeZ; z <= center.Y+rangeZ; z++ {
		for x := center.X - rangeX; x <= center.X+rangeX; x++ {
			c := Coord{x, z}
			if !w.grid.IsOpaque(c) {
				continue
			}
			if mathx.IntersectAABB(body.position, body.BoundingBox, c.Center(), unit) {
				return true
			}
		}
	}
	return false
}
