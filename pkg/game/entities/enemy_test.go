package entities

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEnemy_SpotsAndShoots(t *testing.T) {
	f := newFixture(t,
		"########",
		"#......#",
		"########",
	)
	player := f.spawnPlayer(1.5, 1.5)
	e := NewEnemy(f.env, LightEnemy, 5.5, 1.5)
	f.world.Spawn(e)

	f.run(t, 0.2)
	if e.State != EnemyUnaware {
		t.Fatalf("state after 0.2s = %s, want unaware", e.State)
	}

	f.run(t, 0.1)
	if e.State == EnemyUnaware {
		t.Fatal("enemy did not notice the player in plain sight")
	}
	if f.audio.Count(SoundEnemyAlert) != 1 {
		t.Errorf("alert sound played %d times, want 1", f.audio.Count(SoundEnemyAlert))
	}

	f.run(t, 2)
	if player.Health >= PlayerMaxHealth {
		t.Errorf("player health = %v, want damage from enemy fire", player.Health)
	}
}

func TestEnemy_WallBlocksSight(t *testing.T) {
	f := newFixture(t,
		"########",
		"#..#...#",
		"########",
	)
	f.spawnPlayer(1.5, 1.5)
	e := NewEnemy(f.env, LightEnemy, 5.5, 1.5)
	f.world.Spawn(e)

	f.run(t, 1)
	if e.State != EnemyUnaware {
		t.Errorf("state = %s, want unaware behind a wall", e.State)
	}
}

func TestEnemy_ChasesOutOfRange(t *testing.T) {
	f := newFixture(t,
		"##############",
		"#............#",
		"##############",
	)
	f.spawnPlayer(1.5, 1.5)
	e := NewEnemy(f.env, LightEnemy, 11.5, 1.5)
	f.world.Spawn(e)

	e.enter(EnemyAcquiring, 0)
	f.world.FixedUpdate(tick)

	if e.State != EnemyMoving {
		t.Fatalf("state = %s, want moving", e.State)
	}
	if e.desired[0] >= 0 {
		t.Errorf("desired = %v, want towards the player (-x)", e.desired)
	}
	x := e.Body().Position()[0]
	f.run(t, 0.5)
	if e.Body().Position()[0] >= x {
		t.Errorf("x = %v, want less than %v", e.Body().Position()[0], x)
	}
}

func TestEnemy_Death(t *testing.T) {
	f := newFixture(t, "...")
	e := NewEnemy(f.env, MediumEnemy, 1.5, 0.5)
	f.world.Spawn(e)

	e.Damage(f.world, 150)
	if !e.Alive() || e.Health != 50 {
		t.Fatalf("health = %v, want 50 and alive", e.Health)
	}
	if e.State != EnemyAcquiring {
		t.Errorf("state after being hit = %s, want acquiring", e.State)
	}

	e.Damage(f.world, 100)
	body := e.Body()
	if e.Alive() || body.Layer != 0 || body.Mask != 0 {
		t.Errorf("dead enemy: alive %v layer %d mask %d", e.Alive(), body.Layer, body.Mask)
	}
	if body.Destroyed() {
		t.Error("corpse removed from the world")
	}
	if f.audio.Count(SoundEnemyDeath) != 1 {
		t.Error("death sound not played")
	}
}

func TestParticleEmitter(t *testing.T) {
	f := newFixture(t, "...")
	id := SpawnParticles(f.world, f.env, BloodParticles, mgl32.Vec3{1.5, 0.5, 0.5})
	e, _ := f.world.Entity(id)
	emitter := e.(*ParticleEmitter)
	if n := len(emitter.Particles); n < BloodParticles.MinCount || n > BloodParticles.MaxCount {
		t.Fatalf("particles = %d, want %d..%d", n, BloodParticles.MinCount, BloodParticles.MaxCount)
	}

	f.run(t, BloodParticles.MaxLife+0.05)
	if _, ok := f.world.Entity(id); ok {
		t.Error("emitter still registered after every particle expired")
	}
}
