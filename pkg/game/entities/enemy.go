package entities

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/mathx"
	"worship/pkg/engine/world"
)

const (
	enemyHeight = 0.375

	unawareInterval   = 0.25
	acquiringInterval = 0.25
	moveDuration      = 1.0

	muzzleHeight = 0.1
)

var (
	enemyBoundingBox = mgl32.Vec3{0.25, 0.75, 0.25}
	forwardAxis      = mgl32.Vec3{0, 0, -1}
)

// EnemySpec describes a kind of enemy.
type EnemySpec struct {
	Name         string
	Health       float32
	FireRange    float32
	FireDuration float32
	Projectile   *ProjectileSpec
}

var (
	LightEnemy = &EnemySpec{
		Name:         "light",
		Health:       100,
		FireRange:    4,
		FireDuration: 0.5,
		Projectile:   EnemyPlasma,
	}
	MediumEnemy = &EnemySpec{
		Name:         "medium",
		Health:       200,
		FireRange:    6,
		FireDuration: 1,
		Projectile:   MediumPlasma,
	}
	HeavyEnemy = &EnemySpec{
		Name:         "heavy",
		Health:       300,
		FireRange:    8,
		FireDuration: 1.5,
		Projectile:   HeavyPlasma,
	}
)

// EnemyState is a step of the enemy behavior.
type EnemyState int

const (
	EnemyUnaware EnemyState = iota
	EnemyAcquiring
	EnemyMoving
	EnemyShooting
	EnemyDead
)

func (s EnemyState) String() string {
	switch s {
	case EnemyUnaware:
		return "unaware"
	case EnemyAcquiring:
		return "acquiring"
	case EnemyMoving:
		return "moving"
	case EnemyShooting:
		return "shooting"
	case EnemyDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Enemy waits until it sees the player, then alternates between closing in
// and shooting.
type Enemy struct {
	world.Base
	env  *Env
	Spec *EnemySpec

	Health float32
	State  EnemyState

	timer   float32
	desired mgl32.Vec3
}

// NewEnemy places an enemy on the floor at (x, z).
func NewEnemy(env *Env, spec *EnemySpec, x, z float32) *Enemy {
	body := world.NewBody(mgl32.Vec3{x, enemyHeight, z})
	body.BoundingBox = enemyBoundingBox
	body.Blocking = true
	body.Layer = world.LayerEnemy
	body.Mask = world.LayerPlayer

	return &Enemy{
		Base:   world.NewBase(body),
		env:    env,
		Spec:   spec,
		Health: spec.Health,
		State:  EnemyUnaware,
		timer:  unawareInterval,
	}
}

func (e *Enemy) Kind() Kind { return KindEnemy }

// Alive reports whether the enemy has health left.
func (e *Enemy) Alive() bool {
	return e.State != EnemyDead
}

func (e *Enemy) FixedUpdate(w *world.World, dt float32) {
	e.timer -= dt
	body := e.Body()

	switch e.State {
	case EnemyUnaware:
		if e.timer <= 0 {
			e.timer = unawareInterval
			if _, ok := e.spotPlayer(w, world.LayerPlayer); ok {
				e.enter(EnemyAcquiring, 0)
				w.PlaySoundAt(SoundEnemyAlert, body.Position())
			}
		}
	case EnemyAcquiring:
		if e.timer <= 0 {
			e.acquire(w)
		}
	case EnemyMoving:
		body.Velocity = e.desired
		if e.timer <= 0 {
			body.Velocity = mgl32.Vec3{}
			e.enter(EnemyAcquiring, acquiringInterval)
		}
	case EnemyShooting:
		if e.timer <= 0 {
			e.shoot(w)
			e.enter(EnemyAcquiring, acquiringInterval)
		}
	}

	w.Integrate(body.ID(), dt)
}

func (e *Enemy) enter(s EnemyState, timer float32) {
	e.State = s
	e.timer = timer
}

// acquire looks for the player through walls and other enemies, then picks
// the next action.
func (e *Enemy) acquire(w *world.World) {
	body := e.Body()
	player, ok := e.spotPlayer(w, world.LayerPlayer|world.LayerEnemy)
	if !ok {
		angle := e.env.randRange(0, 2*math.Pi)
		e.desired = mgl32.Vec3{float32(math.Cos(float64(angle))), 0, float32(math.Sin(float64(angle)))}
		e.enter(EnemyMoving, moveDuration)
		return
	}

	to := mathx.Flatten(player.Body().Position().Sub(body.Position()))
	body.Orientation = facing(to)
	if to.Len() <= e.Spec.FireRange {
		body.Velocity = mgl32.Vec3{}
		e.enter(EnemyShooting, e.Spec.FireDuration)
		return
	}
	e.desired = mathx.SafeNormalize(to)
	e.enter(EnemyMoving, moveDuration)
}

// spotPlayer casts a ray at the player and reports whether the first thing
// hit is the living player.
func (e *Enemy) spotPlayer(w *world.World, mask world.Layer) (*Player, bool) {
	target, ok := w.Entity(e.env.Player)
	if !ok {
		return nil, false
	}
	player, ok := target.(*Player)
	if !ok || !player.Alive() {
		return nil, false
	}

	body := e.Body()
	dir := player.Body().Position().Sub(body.Position())
	hit := w.Raycast(body.Position(), dir, mask, body.ID())
	if hit.Entity != e.env.Player {
		return nil, false
	}
	return player, true
}

func (e *Enemy) shoot(w *world.World) {
	target, ok := w.Entity(e.env.Player)
	if !ok {
		return
	}
	body := e.Body()
	origin := body.Position().Add(mgl32.Vec3{0, muzzleHeight, 0})
	body.Orientation = facing(target.Body().Position().Sub(origin))

	SpawnProjectile(w, e.env, e.Spec.Projectile, origin, body.Orientation, world.LayerPlayer)
	w.PlaySoundAt(SoundEnemyShoot, origin)
}

// Damage reduces health and kills the enemy at zero. A dead enemy stays in
// the world as a corpse that nothing collides with.
func (e *Enemy) Damage(w *world.World, amount float32) {
	if !e.Alive() {
		return
	}
	body := e.Body()
	e.Health -= amount
	if e.Health > 0 {
		w.PlaySoundAt(SoundEnemyPain, body.Position())
		if e.State == EnemyUnaware {
			e.enter(EnemyAcquiring, 0)
		}
		return
	}

	e.Health = 0
	e.State = EnemyDead
	body.Layer = 0
	body.Mask = 0
	body.Blocking = false
	body.Velocity = mgl32.Vec3{}
	w.PlaySoundAt(SoundEnemyDeath, body.Position())
}

// facing returns the orientation that looks along dir.
func facing(dir mgl32.Vec3) mgl32.Quat {
	dir = mathx.SafeNormalize(dir)
	if dir.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(forwardAxis, dir)
}
