package world

// Entity is one simulated object owned by a World.
type Entity interface {
	Body() *Body

	// FixedUpdate runs once per simulation tick. Implementations that want
	// physics call World.Integrate.
	FixedUpdate(w *World, dt float32)

	// VariableUpdate runs once per rendered frame.
	VariableUpdate(w *World, dt float32)

	// OnCollision is called when other overlaps this entity and other's
	// layer is in this entity's mask.
	OnCollision(w *World, other Entity)

	// OnWallCollision is called when a movement axis was blocked by a wall.
	OnWallCollision(w *World)

	// Destroy marks the entity for removal at the end of the tick.
	Destroy(w *World)
}

// Base supplies default behavior for Entity implementations to embed.
type Base struct {
	body Body
}

// NewBase wraps a body.
func NewBase(body Body) Base {
	return Base{body: body}
}

func (b *Base) Body() *Body { return &b.body }

// FixedUpdate integrates physics.
func (b *Base) FixedUpdate(w *World, dt float32) {
	w.Integrate(b.body.id, dt)
}

func (b *Base) VariableUpdate(w *World, dt float32) {}

func (b *Base) OnCollision(w *World, other Entity) {}

func (b *Base) OnWallCollision(w *World) {}

// Destroy marks the body destroyed.
func (b *Base) Destroy(w *World) {
	b.body.destroyed = true
}
