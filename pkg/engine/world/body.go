package world

import "github.com/go-gl/mathgl/mgl32"

// Layer is a collision category bitmask.
type Layer uint64

// Collision categories.
const (
	LayerPlayer Layer = 1 << iota
	LayerPickup
	LayerEnemy
	LayerProjectile
)

// Gravity is the downward force applied to bodies with Gravity set.
const Gravity = 32

// Body is the physical state shared by every entity variant.
// The position is only changed through World.SetPosition so the occupant
// index always matches it.
type Body struct {
	id       EntityID
	position mgl32.Vec3

	Orientation mgl32.Quat
	Velocity    mgl32.Vec3

	// BoundingBox is the full size of the box centered on the position.
	BoundingBox mgl32.Vec3

	Mass       float32
	Friction   float32
	Bounciness float32
	Gravity    bool
	Blocking   bool

	Layer Layer
	Mask  Layer

	destroyed bool
}

// NewBody returns a unit-sized body of mass 1 at pos.
func NewBody(pos mgl32.Vec3) Body {
	return Body{
		position:    pos,
		Orientation: mgl32.QuatIdent(),
		BoundingBox: mgl32.Vec3{1, 1, 1},
		Mass:        1,
	}
}

// ID returns the id assigned at spawn, or NoEntity before that.
func (b *Body) ID() EntityID {
	return b.id
}

// Position returns the center of the bounding box.
func (b *Body) Position() mgl32.Vec3 {
	return b.position
}

// Destroyed reports whether the entity is waiting to be removed.
func (b *Body) Destroyed() bool {
	return b.destroyed
}

// MarkDestroyed flags the entity for removal at the end of the tick.
func (b *Body) MarkDestroyed() {
	b.destroyed = true
}

// Direction is the forward vector of the orientation.
func (b *Body) Direction() mgl32.Vec3 {
	return b.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Right is the right-hand vector of the orientation.
func (b *Body) Right() mgl32.Vec3 {
	return b.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Rotate turns the body by angle radians around axis.
func (b *Body) Rotate(angle float32, axis mgl32.Vec3) {
	b.Orientation = mgl32.QuatRotate(angle, axis).Normalize().Mul(b.Orientation)
}

// ApplyForce accelerates the body for dt seconds.
func (b *Body) ApplyForce(force mgl32.Vec3, dt float32) {
	b.Velocity = b.Velocity.Add(force.Mul(dt / b.Mass))
}

// Interacts reports whether b notices other, i.e. other's layer is in b's mask.
func (b *Body) Interacts(other *Body) bool {
	return other.Layer&b.Mask != 0
}
