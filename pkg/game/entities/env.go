// Package entities contains the game objects of Worship: the player, enemies,
// pickups, projectiles and particle effects. They extend the engine's
// world.Base with game rules.
package entities

import (
	"math/rand"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/messages"
)

// Flash is a full-screen color pulse.
type Flash int

const (
	FlashNone Flash = iota
	FlashPickup
	FlashPain
)

// Host receives the entity events that surface in the HUD.
type Host interface {
	DisplayMessage(id messages.ID)
	FlashScreen(f Flash)
}

// Env is what entities need from the game around them.
type Env struct {
	Host       Host
	Rand       *rand.Rand
	Difficulty config.Difficulty

	// Player is the id of the player entity, or world.NoEntity before it spawns.
	Player world.EntityID
}

// NewEnv seeds a deterministic random source.
func NewEnv(host Host, seed int64, difficulty config.Difficulty) *Env {
	return &Env{
		Host:       host,
		Rand:       rand.New(rand.NewSource(seed)),
		Difficulty: difficulty,
	}
}

// randRange returns a uniform float in [lo, hi).
func (e *Env) randRange(lo, hi float32) float32 {
	return lo + e.Rand.Float32()*(hi-lo)
}

// Kind is how renderers and tools classify an entity.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlayer
	KindEnemy
	KindPickup
	KindProjectile
	KindParticles
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPickup:
		return "pickup"
	case KindProjectile:
		return "projectile"
	case KindParticles:
		return "particles"
	default:
		return "unknown"
	}
}

// Kinded is implemented by every entity in this package.
type Kinded interface {
	Kind() Kind
}

// KindOf classifies e.
func KindOf(e world.Entity) Kind {
	if k, ok := e.(Kinded); ok {
		return k.Kind()
	}
	return KindUnknown
}

// Damageable entities lose health when hit.
type Damageable interface {
	Damage(w *world.World, amount float32)
}

// Sound clips.
const (
	SoundPickup        audio.Clip = "pickup"
	SoundPlayerPain    audio.Clip = "player_pain"
	SoundPlayerDeath   audio.Clip = "player_death"
	SoundWeaponSwitch  audio.Clip = "weapon_switch"
	SoundShotgun       audio.Clip = "shotgun"
	SoundPlasmaRifle   audio.Clip = "plasma_rifle"
	SoundGrenadeLaunch audio.Clip = "grenade_launcher"
	SoundGrenadeBounce audio.Clip = "grenade_bounce"
	SoundExplosion     audio.Clip = "explosion"
	SoundPlasmaHit     audio.Clip = "plasma_hit"
	SoundEnemyAlert    audio.Clip = "enemy_alert"
	SoundEnemyShoot    audio.Clip = "enemy_shoot"
	SoundEnemyPain     audio.Clip = "enemy_pain"
	SoundEnemyDeath    audio.Clip = "enemy_death"
)
