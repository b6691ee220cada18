package entities

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/time/rate"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/world"
)

const (
	projectileSize        = 0.125
	projectileLightRadius = 1.5
	explosionLightRadius  = 4

	// bounceSoundInterval throttles the bounce clip of a rattling grenade.
	bounceSoundInterval = 100 * time.Millisecond
)

// ProjectileSpec describes a kind of projectile.
type ProjectileSpec struct {
	Name           string
	Damage         float32
	Life           float32
	Speed          float32
	Friction       float32
	Bounciness     float32
	Gravity        bool
	Light          mgl32.Vec3
	ExplosionLight mgl32.Vec3
	Particles      *ParticleSpec
	BounceSound    audio.Clip
	DeathSound     audio.Clip
}

var (
	Grenade = &ProjectileSpec{
		Name:           "grenade",
		Damage:         100,
		Life:           2,
		Speed:          10,
		Friction:       0.02,
		Bounciness:     0.9,
		Gravity:        true,
		Light:          mgl32.Vec3{1, 0.25, 0.05},
		ExplosionLight: mgl32.Vec3{4, 2, 1},
		Particles:      ExplosionParticles,
		BounceSound:    SoundGrenadeBounce,
		DeathSound:     SoundExplosion,
	}
	EnemyPlasma = &ProjectileSpec{
		Name:           "enemy_plasma",
		Damage:         5,
		Life:           2,
		Speed:          10,
		Light:          mgl32.Vec3{1, 0.2, 0},
		ExplosionLight: mgl32.Vec3{2, 0.1, 0},
		Particles:      BulletHitParticles,
		DeathSound:     SoundPlasmaHit,
	}
	MediumPlasma = &ProjectileSpec{
		Name:           "medium_plasma",
		Damage:         10,
		Life:           5,
		Speed:          7,
		Light:          mgl32.Vec3{0.2, 1, 0},
		ExplosionLight: mgl32.Vec3{0.1, 2, 0},
		Particles:      BulletHitParticles,
		DeathSound:     SoundPlasmaHit,
	}
	HeavyPlasma = &ProjectileSpec{
		Name:           "heavy_plasma",
		Damage:         20,
		Life:           10,
		Speed:          5,
		Light:          mgl32.Vec3{0.1, 0.25, 1},
		ExplosionLight: mgl32.Vec3{0.1, 0.2, 2},
		Particles:      BulletHitParticles,
		DeathSound:     SoundPlasmaHit,
	}
	PlayerPlasma = &ProjectileSpec{
		Name:           "player_plasma",
		Damage:         20,
		Life:           4,
		Speed:          10,
		Light:          mgl32.Vec3{0, 0.1, 0.5},
		ExplosionLight: mgl32.Vec3{0.1, 0.1, 1},
		Particles:      BulletHitParticles,
		DeathSound:     SoundPlasmaHit,
	}
)

// Projectile flies along its orientation until it hits its target layer,
// a wall (unless it bounces) or runs out of lifetime.
type Projectile struct {
	world.Base
	env   *Env
	Spec  *ProjectileSpec
	Life  float32
	light world.LightID

	// clock is simulated time, advanced by each fixed update.
	clock  time.Time
	bounce *rate.Limiter
}

// NewProjectile aims a projectile along orientation. target is the layer it
// damages.
func NewProjectile(env *Env, spec *ProjectileSpec, pos mgl32.Vec3, orientation mgl32.Quat, target world.Layer) *Projectile {
	body := world.NewBody(pos)
	body.Orientation = orientation
	body.BoundingBox = mgl32.Vec3{projectileSize, projectileSize, projectileSize}
	body.Velocity = orientation.Rotate(mgl32.Vec3{0, 0, -spec.Speed})
	body.Friction = spec.Friction
	body.Bounciness = spec.Bounciness
	body.Gravity = spec.Gravity
	body.Layer = world.LayerProjectile
	body.Mask = target

	return &Projectile{
		Base:   world.NewBase(body),
		env:    env,
		Spec:   spec,
		Life:   spec.Life,
		clock:  time.Unix(0, 0),
		bounce: rate.NewLimiter(rate.Every(bounceSoundInterval), 1),
	}
}

// SpawnProjectile adds the projectile and its trailing light to w.
func SpawnProjectile(w *world.World, env *Env, spec *ProjectileSpec, pos mgl32.Vec3, orientation mgl32.Quat, target world.Layer) world.EntityID {
	p := NewProjectile(env, spec, pos, orientation, target)
	p.light = w.AddLight(world.DynamicLight{
		Position: pos,
		Color:    spec.Light,
		Radius:   projectileLightRadius,
	})
	return w.Spawn(p)
}

func (p *Projectile) Kind() Kind { return KindProjectile }

// Light returns the handle of the trailing light.
func (p *Projectile) Light() world.LightID {
	return p.light
}

func (p *Projectile) FixedUpdate(w *world.World, dt float32) {
	p.clock = p.clock.Add(time.Duration(float64(dt) * float64(time.Second)))
	p.Life -= dt
	if p.Life <= 0 {
		p.Destroy(w)
		return
	}

	body := p.Body()
	w.Integrate(body.ID(), dt)
	if !body.Destroyed() {
		w.Lights().SetPosition(p.light, body.Position())
	}
}

func (p *Projectile) OnCollision(w *world.World, other world.Entity) {
	if p.Body().Destroyed() {
		return
	}
	if d, ok := other.(Damageable); ok {
		d.Damage(w, p.Spec.Damage)
	}
	p.Destroy(w)
}

func (p *Projectile) OnWallCollision(w *world.World) {
	if p.Spec.Bounciness == 0 {
		p.Destroy(w)
		return
	}
	if p.bounce.AllowN(p.clock, 1) {
		w.PlaySoundAt(p.Spec.BounceSound, p.Body().Position())
	}
}

// Destroy detonates the projectile once.
func (p *Projectile) Destroy(w *world.World) {
	body := p.Body()
	if body.Destroyed() {
		return
	}
	body.MarkDestroyed()

	pos := body.Position()
	w.Lights().MarkDestroyed(p.light)
	w.AddLight(world.DynamicLight{
		Position:  pos,
		Color:     p.Spec.ExplosionLight,
		Radius:    explosionLightRadius,
		Destroyed: true,
	})
	SpawnParticles(w, p.env, p.Spec.Particles, pos)
	w.PlaySoundAt(p.Spec.DeathSound, pos)
}
