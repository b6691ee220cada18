package entities

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
)

// ParticleSpec describes a burst of particles.
type ParticleSpec struct {
	Name               string
	MinCount, MaxCount int
	MinLife, MaxLife   float32
	MinSpeed, MaxSpeed float32
	GravityY           float32
	Radius             float32
	Color              mgl32.Vec3
}

var (
	ExplosionParticles = &ParticleSpec{
		Name:     "explosion",
		MinCount: 256,
		MaxCount: 256,
		MinLife:  0.5,
		MaxLife:  1,
		MinSpeed: 2,
		MaxSpeed: 4,
		GravityY: -8,
		Radius:   0.25,
		Color:    mgl32.Vec3{1, 0.5, 0.1},
	}
	BulletHitParticles = &ParticleSpec{
		Name:     "bullet_hit",
		MinCount: 4,
		MaxCount: 8,
		MinLife:  0.05,
		MaxLife:  0.5,
		MinSpeed: 0.5,
		MaxSpeed: 1,
		GravityY: -4,
		Radius:   0.05,
		Color:    mgl32.Vec3{1, 0.9, 0.5},
	}
	BloodParticles = &ParticleSpec{
		Name:     "blood",
		MinCount: 16,
		MaxCount: 32,
		MinLife:  0.1,
		MaxLife:  0.5,
		MinSpeed: 0.1,
		MaxSpeed: 0.25,
		GravityY: -1,
		Radius:   0.05,
		Color:    mgl32.Vec3{0.6, 0, 0},
	}
)

// Particle is one point of an emitter. It ignores walls and entities.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Life     float32
}

// Alive reports whether the particle still has lifetime left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// ParticleEmitter owns a burst of particles and removes itself once they
// have all expired. It has no collision layer.
type ParticleEmitter struct {
	world.Base
	Spec      *ParticleSpec
	Particles []Particle
}

// NewParticleEmitter creates a burst at pos with random directions.
func NewParticleEmitter(env *Env, spec *ParticleSpec, pos mgl32.Vec3) *ParticleEmitter {
	count := spec.MinCount
	if spec.MaxCount > spec.MinCount {
		count += env.Rand.Intn(spec.MaxCount - spec.MinCount + 1)
	}

	e := &ParticleEmitter{
		Base:      world.NewBase(world.NewBody(pos)),
		Spec:      spec,
		Particles: make([]Particle, count),
	}
	e.Body().BoundingBox = mgl32.Vec3{spec.Radius, spec.Radius, spec.Radius}
	for i := range e.Particles {
		e.Particles[i] = Particle{
			Position: pos,
			Velocity: randomUnit(env).Mul(env.randRange(spec.MinSpeed, spec.MaxSpeed)),
			Life:     env.randRange(spec.MinLife, spec.MaxLife),
		}
	}
	return e
}

// SpawnParticles adds a burst to w.
func SpawnParticles(w *world.World, env *Env, spec *ParticleSpec, pos mgl32.Vec3) world.EntityID {
	if spec == nil {
		return world.NoEntity
	}
	return w.Spawn(NewParticleEmitter(env, spec, pos))
}

func (e *ParticleEmitter) Kind() Kind { return KindParticles }

// FixedUpdate advances every live particle.
func (e *ParticleEmitter) FixedUpdate(w *world.World, dt float32) {
	alive := 0
	for i := range e.Particles {
		p := &e.Particles[i]
		if !p.Alive() {
			continue
		}
		p.Velocity[1] += e.Spec.GravityY * dt
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Life -= dt
		if p.Alive() {
			alive++
		}
	}
	if alive == 0 {
		e.Destroy(w)
	}
}

// Alive returns how many particles are still visible.
func (e *ParticleEmitter) Alive() int {
	n := 0
	for i := range e.Particles {
		if e.Particles[i].Alive() {
			n++
		}
	}
	return n
}

// randomUnit picks a direction uniformly on the unit sphere.
func randomUnit(env *Env) mgl32.Vec3 {
	z := env.randRange(-1, 1)
	phi := env.randRange(0, 2*math.Pi)
	r := float32(math.Sqrt(float64(1 - z*z)))
	return mgl32.Vec3{
		r * float32(math.Cos(float64(phi))),
		z,
		r * float32(math.Sin(float64(phi))),
	}
}
