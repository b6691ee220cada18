package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/logger"
)

// World owns the tile grid, every entity and every dynamic light.
// It is not safe for concurrent use.
type World struct {
	grid   *Grid
	lights *LightPool

	entities map[EntityID]Entity
	order    []EntityID
	nextID   EntityID

	// Audio receives sound requests from entities. Defaults to audio.Null.
	Audio audio.Player

	// contacts holds the collision callbacks already fired this tick.
	contacts mapset.Set[contact]

	tick uint64
	log  *logrus.Entry
}

// contact is a directed collision notification: receiver was told about other.
type contact struct {
	receiver, other EntityID
}

// New creates a world over grid.
func New(grid *Grid) *World {
	return &World{
		grid:     grid,
		lights:   NewLightPool(),
		entities: make(map[EntityID]Entity),
		Audio:    audio.Null{},
		contacts: mapset.New[contact](),
		log:      logger.For("world"),
	}
}

// Grid returns the tile grid.
func (w *World) Grid() *Grid {
	return w.grid
}

// Lights returns the dynamic light pool.
func (w *World) Lights() *LightPool {
	return w.lights
}

// Tick returns how many fixed updates have run.
func (w *World) Tick() uint64 {
	return w.tick
}

// Spawn registers e, indexes it at its current position and returns its id.
// Entities spawned during a tick are first updated on the next tick.
func (w *World) Spawn(e Entity) EntityID {
	w.nextID++
	id := w.nextID

	body := e.Body()
	body.id = id
	w.entities[id] = e
	w.order = append(w.order, id)
	w.grid.addOccupant(id, body.position)

	w.log.WithFields(logrus.Fields{"id": id, "type": fmt.Sprintf("%T", e)}).Debug("entity spawned")
	return id
}

// Entity returns the entity with the given id.
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Len returns the number of registered entities, including destroyed ones
// not yet swept.
func (w *World) Len() int {
	return len(w.order)
}

// Each calls fn for every registered entity in spawn order.
func (w *World) Each(fn func(e Entity)) {
	for _, id := range w.order {
		fn(w.entities[id])
	}
}

// SetPosition moves an entity and keeps the occupant index in step with it.
func (w *World) SetPosition(id EntityID, pos mgl32.Vec3) {
	e, ok := w.entities[id]
	if !ok {
		panic(fmt.Sprintf("world: SetPosition on unknown entity %d", id))
	}
	body := e.Body()
	w.grid.removeOccupant(id, body.position)
	body.position = pos
	w.grid.addOccupant(id, body.position)
}

// FixedUpdate advances every live entity by one tick, then removes destroyed ones.
func (w *World) FixedUpdate(dt float32) {
	w.contacts = mapset.New[contact]()

	n := len(w.order)
	for i := 0; i < n; i++ {
		e := w.entities[w.order[i]]
		if e.Body().destroyed {
			continue
		}
		e.FixedUpdate(w, dt)
	}
	w.sweep()
	w.tick++
}

// VariableUpdate runs per-frame entity updates and fades dynamic lights.
func (w *World) VariableUpdate(dt float32) {
	n := len(w.order)
	for i := 0; i < n; i++ {
		e := w.entities[w.order[i]]
		if e.Body().destroyed {
			continue
		}
		e.VariableUpdate(w, dt)
	}
	w.lights.Fade(dt)
}

func (w *World) sweep() {
	kept := w.order[:0]
	for _, id := range w.order {
		e := w.entities[id]
		body := e.Body()
		if body.destroyed {
			w.grid.removeOccupant(id, body.position)
			delete(w.entities, id)
			continue
		}
		kept = append(kept, id)
	}
	w.order = kept
}

// Light samples the blended static light at a world position.
func (w *World) Light(pos mgl32.Vec3) mgl32.Vec4 {
	return w.grid.LightAt(pos[0], pos[2])
}

// AddLight adds a dynamic light to the pool.
func (w *World) AddLight(l DynamicLight) LightID {
	return w.lights.Add(l)
}

// PlaySound forwards an unpositioned clip to Audio.
func (w *World) PlaySound(clip audio.Clip) {
	if clip == "" {
		return
	}
	w.Audio.Play(clip)
}

// PlaySoundAt forwards a positioned clip to Audio.
func (w *World) PlaySoundAt(clip audio.Clip, pos mgl32.Vec3) {
	if clip == "" {
		return
	}
	w.Audio.PlayAt(clip, pos)
}
