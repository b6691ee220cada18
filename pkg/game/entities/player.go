package entities

import (
	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/mathx"
	"worship/pkg/engine/world"
	"worship/pkg/game/messages"
)

const (
	PlayerMaxHealth = 100
	PlayerMaxArmor  = 100

	playerFriction  = 0.2
	playerWalkForce = 50
	deadEyeHeight   = 0.2

	// weaponSwitchSpeed is how many lower-or-raise cycles fit in a second.
	weaponSwitchSpeed = 4
)

var playerBoundingBox = mgl32.Vec3{0.5, 0.99, 0.5}

// MaxAmmo is the carrying limit of each ammo pool.
var MaxAmmo = map[AmmoType]int{
	AmmoShells:   100,
	AmmoGrenades: 50,
	AmmoCells:    200,
}

// Player is the entity controlled by the user.
type Player struct {
	world.Base
	env *Env

	Health float32
	Armor  float32
	Ammo   map[AmmoType]int

	weapons map[int]*Weapon
	current int
	pending int

	// raise is how far the current weapon is raised, from 0 (hidden) to 1.
	raise float32
	eyeY  float32
}

// NewPlayer creates a player standing at pos.
func NewPlayer(env *Env, pos mgl32.Vec3) *Player {
	body := world.NewBody(pos)
	body.BoundingBox = playerBoundingBox
	body.Friction = playerFriction
	body.Blocking = true
	body.Layer = world.LayerPlayer
	body.Mask = world.LayerEnemy

	return &Player{
		Base:    world.NewBase(body),
		env:     env,
		Health:  PlayerMaxHealth,
		Ammo:    make(map[AmmoType]int),
		weapons: make(map[int]*Weapon),
		raise:   1,
		eyeY:    pos[1],
	}
}

func (p *Player) Kind() Kind { return KindPlayer }

// Alive reports whether the player has health left.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// Eye is the camera position.
func (p *Player) Eye() mgl32.Vec3 {
	pos := p.Body().Position()
	pos[1] = p.eyeY
	return pos
}

// Walk accelerates the player along dir for dt seconds.
func (p *Player) Walk(dir mgl32.Vec3, dt float32) {
	if !p.Alive() {
		return
	}
	p.Body().ApplyForce(dir.Mul(playerWalkForce), dt)
}

// Turn rotates the view by angle radians, positive to the left.
func (p *Player) Turn(angle float32) {
	if !p.Alive() {
		return
	}
	p.Body().Rotate(angle, mathx.Up)
}

// Weapon returns the selected weapon, or nil when unarmed.
func (p *Player) Weapon() *Weapon {
	return p.weapons[p.current]
}

// HasWeapon reports whether a weapon occupies slot.
func (p *Player) HasWeapon(slot int) bool {
	_, ok := p.weapons[slot]
	return ok
}

// Raise returns how far the current weapon is raised, from 0 to 1.
func (p *Player) Raise() float32 {
	return p.raise
}

// SelectWeapon starts switching to the weapon in slot. Empty slots and the
// current weapon are ignored.
func (p *Player) SelectWeapon(w *world.World, slot int) {
	if !p.Alive() || !p.HasWeapon(slot) || slot == p.current || slot == p.pending {
		return
	}
	if p.Weapon() == nil {
		p.current = slot
		p.raise = 0
		return
	}
	p.pending = slot
	w.PlaySound(SoundWeaponSwitch)
}

// Switching reports whether a weapon change is in progress.
func (p *Player) Switching() bool {
	return p.pending != 0 || p.raise < 1
}

// Fire shoots the current weapon unless it is being switched.
func (p *Player) Fire(w *world.World) bool {
	wp := p.Weapon()
	if !p.Alive() || wp == nil || p.Switching() {
		return false
	}
	return wp.Fire(w, p)
}

func (p *Player) FixedUpdate(w *world.World, dt float32) {
	w.Integrate(p.Body().ID(), dt)
	for _, wp := range p.weapons {
		wp.FixedUpdate(dt)
	}
}

// VariableUpdate animates weapon switching: the current weapon is lowered,
// swapped, then the new one raised.
func (p *Player) VariableUpdate(w *world.World, dt float32) {
	step := weaponSwitchSpeed * dt
	if p.pending != 0 {
		p.raise -= step
		if p.raise <= 0 {
			p.raise = 0
			p.current = p.pending
			p.pending = 0
		}
		return
	}
	if p.raise < 1 {
		p.raise += step
		if p.raise > 1 {
			p.raise = 1
		}
	}
}

// Damage applies difficulty-scaled damage. Armor absorbs half of the hit on
// health while it lasts.
func (p *Player) Damage(w *world.World, amount float32) {
	if !p.Alive() {
		return
	}
	amount *= p.env.Difficulty.DamageFactor()

	if p.Armor > 0 {
		p.Armor -= amount
		if p.Armor < 0 {
			p.Armor = 0
		}
		p.Health -= amount / 2
	} else {
		p.Health -= amount
	}

	p.env.Host.FlashScreen(FlashPain)
	if p.Health > 0 {
		w.PlaySound(SoundPlayerPain)
		return
	}

	p.Health = 0
	p.eyeY = deadEyeHeight
	p.Body().Velocity = mgl32.Vec3{}
	p.env.Host.DisplayMessage(messages.Died)
	w.PlaySound(SoundPlayerDeath)
}

// AddHealth heals up to the maximum. It fails at full health.
func (p *Player) AddHealth(amount float32) bool {
	if p.Health >= PlayerMaxHealth {
		return false
	}
	p.Health = min(p.Health+amount, PlayerMaxHealth)
	return true
}

// AddArmor adds armor up to the maximum. It fails at full armor.
func (p *Player) AddArmor(amount float32) bool {
	if p.Armor >= PlayerMaxArmor {
		return false
	}
	p.Armor = min(p.Armor+amount, PlayerMaxArmor)
	return true
}

// AddAmmo adds ammo up to the pool's maximum. It fails when the pool is full.
func (p *Player) AddAmmo(t AmmoType, amount int) bool {
	limit := MaxAmmo[t]
	if p.Ammo[t] >= limit {
		return false
	}
	p.Ammo[t] = min(p.Ammo[t]+amount, limit)
	return true
}

// AddWeapon grants a weapon. A weapon already owned only adds ammo; a new one
// comes with its first-pickup ammo and is selected.
func (p *Player) AddWeapon(w *world.World, spec *WeaponSpec) bool {
	if p.HasWeapon(spec.Slot) {
		return p.AddAmmo(spec.Ammo, spec.AmmoPerPickup)
	}
	p.weapons[spec.Slot] = NewWeapon(spec)
	p.AddAmmo(spec.Ammo, spec.AmmoOnFirstPickup)
	p.SelectWeapon(w, spec.Slot)
	return true
}
