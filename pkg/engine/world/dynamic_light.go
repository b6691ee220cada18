package world

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/mathx"
)

const (
	// LightFadeRate is how much color per second a destroyed light loses.
	LightFadeRate = 4

	// MaxRelevantLights bounds the lights handed to a renderer each frame.
	MaxRelevantLights = 32
)

// LightID is a stable handle to a dynamic light. Zero is never assigned.
type LightID uint64

// DynamicLight is a transient point light.
type DynamicLight struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Radius    float32
	Destroyed bool
}

// LightBatch holds parallel light arrays for a renderer.
type LightBatch struct {
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3
	Radii     []float32
}

// Len returns the number of lights in the batch.
func (b LightBatch) Len() int {
	return len(b.Positions)
}

// LightPool owns every dynamic light. Iteration follows insertion order.
type LightPool struct {
	lights map[LightID]*DynamicLight
	order  []LightID
	nextID LightID
}

// NewLightPool creates an empty pool.
func NewLightPool() *LightPool {
	return &LightPool{lights: make(map[LightID]*DynamicLight)}
}

// Add stores a light and returns its handle.
func (p *LightPool) Add(l DynamicLight) LightID {
	p.nextID++
	id := p.nextID
	p.lights[id] = &l
	p.order = append(p.order, id)
	return id
}

// Get returns the light for id. The pointer is valid until the light is reclaimed.
func (p *LightPool) Get(id LightID) (*DynamicLight, bool) {
	l, ok := p.lights[id]
	return l, ok
}

// SetPosition moves a light. Unknown handles are ignored.
func (p *LightPool) SetPosition(id LightID, pos mgl32.Vec3) {
	if l, ok := p.lights[id]; ok {
		l.Position = pos
	}
}

// MarkDestroyed starts fading a light out.
func (p *LightPool) MarkDestroyed(id LightID) {
	if l, ok := p.lights[id]; ok {
		l.Destroyed = true
	}
}

// Len returns the number of lights in the pool.
func (p *LightPool) Len() int {
	return len(p.order)
}

// Fade darkens destroyed lights by LightFadeRate*dt and reclaims fully dark ones.
func (p *LightPool) Fade(dt float32) {
	kept := p.order[:0]
	for _, id := range p.order {
		l := p.lights[id]
		if l.Destroyed {
			l.Color = mathx.ClampZero(l.Color.Sub(mgl32.Vec3{1, 1, 1}.Mul(LightFadeRate * dt)))
			if l.Color == (mgl32.Vec3{}) {
				delete(p.lights, id)
				continue
			}
		}
		kept = append(kept, id)
	}
	p.order = kept
}

// Relevant returns at most MaxRelevantLights lights ordered by
// distance to viewer times radius, smallest first. Equal scores keep
// insertion order.
func (p *LightPool) Relevant(viewer mgl32.Vec3) LightBatch {
	type scored struct {
		light *DynamicLight
		score float32
	}

	candidates := make([]scored, 0, len(p.order))
	for _, id := range p.order {
		l := p.lights[id]
		candidates = append(candidates, scored{l, viewer.Sub(l.Position).Len() * l.Radius})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})
	if len(candidates) > MaxRelevantLights {
		candidates = candidates[:MaxRelevantLights]
	}

	batch := LightBatch{
		Positions: make([]mgl32.Vec3, 0, len(candidates)),
		Colors:    make([]mgl32.Vec3, 0, len(candidates)),
		Radii:     make([]float32, 0, len(candidates)),
	}
	for _, c := range candidates {
		batch.Positions = append(batch.Positions, c.light.Position)
		batch.Colors = append(batch.Colors, c.light.Color)
		batch.Radii = append(batch.Radii, c.light.Radius)
	}
	return batch
}
