package entities

import (
	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
	"worship/pkg/game/messages"
)

const pickupLightRadius = 1.5

// PickupSpec describes a kind of pickup.
type PickupSpec struct {
	Name        string
	BoundingBox mgl32.Vec3
	Light       mgl32.Vec3
	HasLight    bool
	Message     messages.ID

	// grant applies the pickup and reports whether the player took it.
	grant func(w *world.World, p *Player) bool
}

var (
	ArmorPickup = &PickupSpec{
		Name:        "armor",
		BoundingBox: mgl32.Vec3{0.25, 0.35, 0.25},
		Light:       mgl32.Vec3{0.1, 0.5, 0.1},
		HasLight:    true,
		Message:     messages.PickupArmor,
		grant:       func(_ *world.World, p *Player) bool { return p.AddArmor(50) },
	}
	HealthPickup = &PickupSpec{
		Name:        "health",
		BoundingBox: mgl32.Vec3{0.25, 0.25, 0.25},
		Light:       mgl32.Vec3{0.5, 0.1, 0.1},
		HasLight:    true,
		Message:     messages.PickupHealth,
		grant:       func(_ *world.World, p *Player) bool { return p.AddHealth(10) },
	}
	ShellsPickup = &PickupSpec{
		Name:        "shells",
		BoundingBox: mgl32.Vec3{0.25, 0.25, 0.25},
		Message:     messages.PickupShells,
		grant:       func(_ *world.World, p *Player) bool { return p.AddAmmo(AmmoShells, 3) },
	}
	CellsPickup = &PickupSpec{
		Name:        "cells",
		BoundingBox: mgl32.Vec3{0.25, 0.25, 0.25},
		Light:       mgl32.Vec3{0.1, 0.2, 0.5},
		HasLight:    true,
		Message:     messages.PickupCells,
		grant:       func(_ *world.World, p *Player) bool { return p.AddAmmo(AmmoCells, 10) },
	}
	GrenadesPickup = &PickupSpec{
		Name:        "grenades",
		BoundingBox: mgl32.Vec3{0.25, 0.4, 0.25},
		Light:       mgl32.Vec3{0.5, 0.1, 0.1},
		HasLight:    true,
		Message:     messages.PickupGrenades,
		grant:       func(_ *world.World, p *Player) bool { return p.AddAmmo(AmmoGrenades, 5) },
	}
	ShotgunPickup = &PickupSpec{
		Name:        "shotgun",
		BoundingBox: mgl32.Vec3{0.25, 0.6, 0.25},
		Message:     messages.PickupShotgun,
		grant:       weaponGrant(Shotgun),
	}
	PlasmaRiflePickup = &PickupSpec{
		Name:        "plasma_rifle",
		BoundingBox: mgl32.Vec3{0.25, 0.75, 0.25},
		Message:     messages.PickupPlasma,
		grant:       weaponGrant(PlasmaRifle),
	}
	GrenadeLauncherPickup = &PickupSpec{
		Name:        "grenade_launcher",
		BoundingBox: mgl32.Vec3{0.25, 0.75, 0.25},
		Message:     messages.PickupLauncher,
		grant:       weaponGrant(GrenadeLauncher),
	}
)

func weaponGrant(spec *WeaponSpec) func(w *world.World, p *Player) bool {
	return func(w *world.World, p *Player) bool { return p.AddWeapon(w, spec) }
}

// Pickup rests on the floor until the player touches it.
type Pickup struct {
	world.Base
	env   *Env
	Spec  *PickupSpec
	light world.LightID
}

// NewPickup places a pickup on the floor below (x, z).
func NewPickup(env *Env, spec *PickupSpec, x, z float32) *Pickup {
	body := world.NewBody(mgl32.Vec3{x, spec.BoundingBox[1] / 2, z})
	body.BoundingBox = spec.BoundingBox
	body.Layer = world.LayerPickup
	body.Mask = world.LayerPlayer

	return &Pickup{
		Base: world.NewBase(body),
		env:  env,
		Spec: spec,
	}
}

// SpawnPickup adds the pickup and its glow, if any, to w.
func SpawnPickup(w *world.World, env *Env, spec *PickupSpec, x, z float32) world.EntityID {
	p := NewPickup(env, spec, x, z)
	if spec.HasLight {
		p.light = w.AddLight(world.DynamicLight{
			Position: p.Body().Position(),
			Color:    spec.Light,
			Radius:   pickupLightRadius,
		})
	}
	return w.Spawn(p)
}

func (p *Pickup) Kind() Kind { return KindPickup }

// FixedUpdate does nothing; pickups never move.
func (p *Pickup) FixedUpdate(w *world.World, dt float32) {}

func (p *Pickup) OnCollision(w *world.World, other world.Entity) {
	player, ok := other.(*Player)
	if !ok || p.Body().Destroyed() || !player.Alive() {
		return
	}
	if !p.Spec.grant(w, player) {
		return
	}

	p.Destroy(w)
	p.env.Host.FlashScreen(FlashPickup)
	p.env.Host.DisplayMessage(p.Spec.Message)
	w.PlaySound(SoundPickup)
}

func (p *Pickup) Destroy(w *world.World) {
	p.Body().MarkDestroyed()
	if p.light != 0 {
		w.Lights().MarkDestroyed(p.light)
	}
}
