package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
	"worship/pkg/game/entities"
	"worship/pkg/game/state"
)

// FOV is the horizontal field of view of the first-person camera.
var FOV = mgl32.DegToRad(90)

// DefaultColumns is the number of visibility rays cast per frame.
const DefaultColumns = 64

// EntityView is what a renderer needs to draw one entity.
type EntityView struct {
	ID          world.EntityID
	Kind        entities.Kind
	Name        string
	Position    mgl32.Vec3
	BoundingBox mgl32.Vec3

	// Heading is the yaw in radians, 0 looking down -Z.
	Heading float32

	// Light is the blended static light at the entity's position.
	Light mgl32.Vec4

	// Particles holds live particle positions for emitters.
	Particles []mgl32.Vec3
	Color     mgl32.Vec3

	// Dead marks corpses that are still drawn.
	Dead bool
}

// HUD holds the numbers shown over the view.
type HUD struct {
	Alive  bool
	Health float32
	Armor  float32
	Weapon string
	Ammo   int
	Frame  int
	Raise  float32
}

// Frame is everything drawn for one rendered frame.
type Frame struct {
	Tick    uint64
	Eye     mgl32.Vec3
	Forward mgl32.Vec3

	// Grid is shared with the simulation and must only be read.
	Grid     *world.Grid
	Chunks   []world.Coord
	Entities []EntityView
	Lights   world.LightBatch

	HUD      HUD
	Message  string
	Messages []string

	FlashColor mgl32.Vec3
	FlashAlpha float32
}

// NewFrame captures the view of the player. Without a player the frame holds
// the grid only.
func NewFrame(g *state.Game, columns int) *Frame {
	w := g.World
	f := &Frame{
		Tick:     w.Tick(),
		Grid:     w.Grid(),
		Message:  g.Message(),
		Messages: append([]string(nil), g.Messages...),
	}
	f.FlashColor, f.FlashAlpha = g.Flash()

	p, ok := g.Player()
	if !ok {
		return f
	}
	f.Eye = p.Eye()
	f.Forward = p.Body().Direction()
	f.HUD = hudFor(p)
	f.Lights = w.Lights().Relevant(f.Eye)

	vis := w.Visible(f.Eye, f.Forward, FOV, columns)
	f.Chunks = vis.Chunks
	for _, id := range vis.Entities {
		e, ok := w.Entity(id)
		if !ok || e.Body().Destroyed() {
			continue
		}
		f.Entities = append(f.Entities, viewOf(w, e))
	}
	return f
}

func hudFor(p *entities.Player) HUD {
	h := HUD{
		Alive:  p.Alive(),
		Health: p.Health,
		Armor:  p.Armor,
		Raise:  p.Raise(),
	}
	if wp := p.Weapon(); wp != nil {
		h.Weapon = wp.Spec.Name
		h.Ammo = p.Ammo[wp.Spec.Ammo]
		h.Frame = wp.Frame()
	}
	return h
}

func viewOf(w *world.World, e world.Entity) EntityView {
	body := e.Body()
	v := EntityView{
		ID:          body.ID(),
		Kind:        entities.KindOf(e),
		Position:    body.Position(),
		BoundingBox: body.BoundingBox,
		Heading:     Heading(body.Direction()),
		Light:       w.Light(body.Position()),
	}

	switch t := e.(type) {
	case *entities.Enemy:
		v.Name = t.Spec.Name
		v.Dead = t.State == entities.EnemyDead
	case *entities.Pickup:
		v.Name = t.Spec.Name
	case *entities.Projectile:
		v.Name = t.Spec.Name
		v.Color = t.Spec.Light
	case *entities.ParticleEmitter:
		v.Name = t.Spec.Name
		v.Color = t.Spec.Color
		for i := range t.Particles {
			if t.Particles[i].Alive() {
				v.Particles = append(v.Particles, t.Particles[i].Position)
			}
		}
	}
	return v
}

// Heading returns the yaw of a direction, 0 along -Z and growing towards -X.
func Heading(dir mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(-dir[0]), float64(-dir[2])))
}
