package devtools

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"worship/pkg/engine/world"
	"worship/pkg/game/entities"
	"worship/pkg/game/state"
)

// PublishInterval bounds how often the gameplay loop captures snapshots.
const PublishInterval = 100 * time.Millisecond

// EntitySnapshot is one entity as seen by the debug server.
type EntitySnapshot struct {
	ID     world.EntityID `json:"id"`
	Kind   string         `json:"kind"`
	Name   string         `json:"name,omitempty"`
	X      float32        `json:"x"`
	Y      float32        `json:"y"`
	Z      float32        `json:"z"`
	Health float32        `json:"health,omitempty"`
	State  string         `json:"state,omitempty"`
}

// PlayerSnapshot holds the player's HUD numbers.
type PlayerSnapshot struct {
	Alive  bool    `json:"alive"`
	Health float32 `json:"health"`
	Armor  float32 `json:"armor"`
	Weapon string  `json:"weapon,omitempty"`
	Ammo   int     `json:"ammo"`
}

// Snapshot is a copy of the session state safe to hand to other goroutines.
type Snapshot struct {
	Session  string           `json:"session"`
	Tick     uint64           `json:"tick"`
	Lights   int              `json:"lights"`
	Message  string           `json:"message,omitempty"`
	Player   *PlayerSnapshot  `json:"player,omitempty"`
	Entities []EntitySnapshot `json:"entities"`
}

// Capture copies the state of g. It must run on the goroutine that owns the
// world.
func Capture(g *state.Game) Snapshot {
	w := g.World
	s := Snapshot{
		Session:  g.SessionID,
		Tick:     w.Tick(),
		Lights:   w.Lights().Len(),
		Message:  g.Message(),
		Entities: make([]EntitySnapshot, 0, w.Len()),
	}

	w.Each(func(e world.Entity) {
		body := e.Body()
		if body.Destroyed() {
			return
		}
		pos := body.Position()
		es := EntitySnapshot{
			ID:   body.ID(),
			Kind: entities.KindOf(e).String(),
			X:    pos[0],
			Y:    pos[1],
			Z:    pos[2],
		}
		switch t := e.(type) {
		case *entities.Player:
			es.Health = t.Health
		case *entities.Enemy:
			es.Name = t.Spec.Name
			es.Health = t.Health
			es.State = t.State.String()
		case *entities.Pickup:
			es.Name = t.Spec.Name
		case *entities.Projectile:
			es.Name = t.Spec.Name
		}
		s.Entities = append(s.Entities, es)
	})

	if p, ok := g.Player(); ok {
		ps := &PlayerSnapshot{
			Alive:  p.Alive(),
			Health: p.Health,
			Armor:  p.Armor,
		}
		if wp := p.Weapon(); wp != nil {
			ps.Weapon = wp.Spec.Name
			ps.Ammo = p.Ammo[wp.Spec.Ammo]
		}
		s.Player = ps
	}
	return s
}

// Publisher hands the latest snapshot and map from the loop goroutine to the
// debug server.
type Publisher struct {
	mu       sync.RWMutex
	snapshot Snapshot
	mapText  string

	sometimes rate.Sometimes
}

// NewPublisher creates a publisher that accepts at most one capture per
// PublishInterval.
func NewPublisher() *Publisher {
	return &Publisher{sometimes: rate.Sometimes{Interval: PublishInterval}}
}

// Offer captures g if the last capture is older than PublishInterval.
func (p *Publisher) Offer(g *state.Game) {
	p.sometimes.Do(func() {
		p.Publish(Capture(g), mapText(g.World))
	})
}

// Publish replaces the stored snapshot and map.
func (p *Publisher) Publish(s Snapshot, text string) {
	p.mu.Lock()
	p.snapshot = s
	p.mapText = text
	p.mu.Unlock()
}

// Latest returns the stored snapshot.
func (p *Publisher) Latest() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Map returns the stored map dump.
func (p *Publisher) Map() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mapText
}

func mapText(w *world.World) string {
	var b strings.Builder
	DumpMap(&b, w)
	return b.String()
}
