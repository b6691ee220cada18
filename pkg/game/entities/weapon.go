package entities

import (
	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/mathx"
	"worship/pkg/engine/world"
)

// AmmoType names an ammunition pool.
type AmmoType int

const (
	AmmoShells AmmoType = iota
	AmmoCells
	AmmoGrenades
)

func (a AmmoType) String() string {
	switch a {
	case AmmoShells:
		return "shells"
	case AmmoCells:
		return "cells"
	case AmmoGrenades:
		return "grenades"
	default:
		return "unknown"
	}
}

const (
	muzzleLightRadius = 3
	sparkLightRadius  = 3

	shotgunPellets = 16
	shotgunSpread  = 0.6
	shotgunDamage  = 10

	// muzzleReach is how far ahead of the eye fired projectiles appear.
	muzzleReach = 0.75
	muzzleDrop  = 0.05
)

var sparkLight = mgl32.Vec3{0.25, 0.125, 0.005}

// WeaponSpec describes a kind of weapon.
type WeaponSpec struct {
	Name string
	Slot int
	Ammo AmmoType

	// AmmoOnFirstPickup is granted with the weapon; AmmoPerPickup when the
	// weapon is picked up again.
	AmmoOnFirstPickup int
	AmmoPerPickup     int

	// Frames are the animation frame durations; their sum is the reload time.
	Frames []float32

	MuzzleLight    mgl32.Vec3
	HasMuzzleLight bool
	Sound          audio.Clip

	fire func(w *world.World, p *Player)
}

var (
	Shotgun = &WeaponSpec{
		Name:              "shotgun",
		Slot:              1,
		Ammo:              AmmoShells,
		AmmoOnFirstPickup: 5,
		AmmoPerPickup:     3,
		Frames:            []float32{0, 0.5, 0.1, 0.1, 0.1, 0.1, 0.1, 0.35},
		MuzzleLight:       mgl32.Vec3{2, 1.5, 1},
		HasMuzzleLight:    true,
		Sound:             SoundShotgun,
		fire:              fireShotgun,
	}
	PlasmaRifle = &WeaponSpec{
		Name:              "plasma_rifle",
		Slot:              2,
		Ammo:              AmmoCells,
		AmmoOnFirstPickup: 25,
		AmmoPerPickup:     10,
		Frames:            []float32{0, 0.1},
		MuzzleLight:       mgl32.Vec3{0.5, 1, 2},
		HasMuzzleLight:    true,
		Sound:             SoundPlasmaRifle,
		fire:              projectileFire(PlayerPlasma),
	}
	GrenadeLauncher = &WeaponSpec{
		Name:              "grenade_launcher",
		Slot:              3,
		Ammo:              AmmoGrenades,
		AmmoOnFirstPickup: 6,
		AmmoPerPickup:     3,
		Frames:            []float32{0, 0.5},
		MuzzleLight:       mgl32.Vec3{2, 1.5, 1},
		HasMuzzleLight:    true,
		Sound:             SoundGrenadeLaunch,
		fire:              projectileFire(Grenade),
	}
)

// ReloadTime is the time between two shots.
func (s *WeaponSpec) ReloadTime() float32 {
	var total float32
	for _, f := range s.Frames {
		total += f
	}
	return total
}

// Weapon is a weapon owned by the player.
type Weapon struct {
	Spec   *WeaponSpec
	reload float32
}

// NewWeapon returns a weapon ready to fire.
func NewWeapon(spec *WeaponSpec) *Weapon {
	return &Weapon{Spec: spec}
}

// Ready reports whether the reload has finished.
func (wp *Weapon) Ready() bool {
	return wp.reload <= 0
}

// Frame is the animation frame for the current point of the reload.
func (wp *Weapon) Frame() int {
	if wp.Ready() {
		return 0
	}
	elapsed := wp.Spec.ReloadTime() - wp.reload
	for i, d := range wp.Spec.Frames {
		if elapsed < d {
			return i
		}
		elapsed -= d
	}
	return len(wp.Spec.Frames) - 1
}

// Fire shoots once when the weapon is ready and the player has ammo.
func (wp *Weapon) Fire(w *world.World, p *Player) bool {
	if !wp.Ready() || p.Ammo[wp.Spec.Ammo] <= 0 {
		return false
	}
	wp.reload = wp.Spec.ReloadTime()

	if wp.Spec.HasMuzzleLight {
		w.AddLight(world.DynamicLight{
			Position:  p.Eye(),
			Color:     wp.Spec.MuzzleLight,
			Radius:    muzzleLightRadius,
			Destroyed: true,
		})
	}
	wp.Spec.fire(w, p)
	p.Ammo[wp.Spec.Ammo]--
	w.PlaySound(wp.Spec.Sound)
	return true
}

// FixedUpdate counts the reload down.
func (wp *Weapon) FixedUpdate(dt float32) {
	wp.reload -= dt
	if wp.reload < 0 {
		wp.reload = 0
	}
}

func fireShotgun(w *world.World, p *Player) {
	eye := p.Eye()
	forward := p.Body().Direction()

	for i := 0; i < shotgunPellets; i++ {
		angle := p.env.randRange(-0.5, 0.5) * shotgunSpread
		dir := mathx.RotateY(forward, angle)

		hit := w.Raycast(eye, dir, world.LayerEnemy, p.Body().ID())
		if hit.HitEntity() {
			if target, ok := w.Entity(hit.Entity); ok {
				if d, ok := target.(Damageable); ok {
					d.Damage(w, shotgunDamage)
				}
			}
			SpawnParticles(w, p.env, BloodParticles, hit.Point)
			continue
		}

		SpawnParticles(w, p.env, BulletHitParticles, hit.Point)
		w.AddLight(world.DynamicLight{
			Position:  hit.Point,
			Color:     sparkLight,
			Radius:    sparkLightRadius,
			Destroyed: true,
		})
	}
}

// projectileFire launches spec from just below the eye. The spawn point is
// pulled back to the nearest obstacle so projectiles never start inside a wall.
func projectileFire(spec *ProjectileSpec) func(w *world.World, p *Player) {
	return func(w *world.World, p *Player) {
		body := p.Body()
		origin := p.Eye().Sub(mgl32.Vec3{0, muzzleDrop, 0})
		dir := body.Direction()

		hit := w.Raycast(origin, dir, world.LayerEnemy, body.ID())
		reach := float32(muzzleReach)
		if d := mathx.Flatten(hit.Point.Sub(origin)).Len(); d < reach {
			reach = d
		}
		SpawnProjectile(w, p.env, spec, origin.Add(dir.Mul(reach)), body.Orientation, world.LayerEnemy)
	}
}
