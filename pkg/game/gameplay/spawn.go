// Package gameplay turns decoded levels into running games and provides the
// gameplay and pause states driven by the loop.
package gameplay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"worship/pkg/engine/logger"
	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/entities"
	"worship/pkg/game/messages"
	"worship/pkg/game/state"
)

// ObjectType is the type id of a level object record.
type ObjectType uint8

const (
	ObjectPlayerSpawn ObjectType = iota
	ObjectLightWhite
	ObjectLightRed
	ObjectLightGreen
	ObjectLightBlue
	ObjectLightOrange
	ObjectArmor
	ObjectArmorShard
	ObjectHealth
	ObjectShells
	ObjectShotgun
	ObjectGrenades
	ObjectGrenadeLauncher
	ObjectEnemyLight
	ObjectPlasmaRifle
	ObjectCells
	ObjectEnemyMedium
	ObjectEnemyHeavy
)

// spawnHeight is the eye height the player starts at.
const spawnHeight = 0.5

var staticLights = map[ObjectType]mgl32.Vec3{
	ObjectLightWhite:  {1, 1, 1},
	ObjectLightRed:    {1, 0, 0},
	ObjectLightGreen:  {0, 1, 0},
	ObjectLightBlue:   {0, 0, 1},
	ObjectLightOrange: {1, 0.75, 0.5},
}

var pickups = map[ObjectType]*entities.PickupSpec{
	ObjectArmor:           entities.ArmorPickup,
	ObjectHealth:          entities.HealthPickup,
	ObjectShells:          entities.ShellsPickup,
	ObjectShotgun:         entities.ShotgunPickup,
	ObjectGrenades:        entities.GrenadesPickup,
	ObjectGrenadeLauncher: entities.GrenadeLauncherPickup,
	ObjectPlasmaRifle:     entities.PlasmaRiflePickup,
	ObjectCells:           entities.CellsPickup,
}

var enemies = map[ObjectType]*entities.EnemySpec{
	ObjectEnemyLight:  entities.LightEnemy,
	ObjectEnemyMedium: entities.MediumEnemy,
	ObjectEnemyHeavy:  entities.HeavyEnemy,
}

// Load builds a game from a decoded level.
func Load(level *world.Level, difficulty config.Difficulty, catalog *messages.Catalog, seed int64) (*state.Game, error) {
	g := state.NewGame(world.New(level.Grid()), difficulty, catalog, seed)
	if err := Spawn(level, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Spawn bakes the level's static lights into the game's grid and spawns its
// entities. Unknown object types are logged and skipped. A second player
// spawn is an error wrapping world.ErrDuplicateSpawn.
func Spawn(level *world.Level, g *state.Game) error {
	log := logger.For("spawn")
	w := g.World
	env := g.Env

	for i, obj := range level.Objects {
		t := ObjectType(obj.Type)

		if color, ok := staticLights[t]; ok {
			w.Grid().Radiate(world.TileCoord(mgl32.Vec3{obj.X, 0, obj.Z}), color)
			continue
		}
		if spec, ok := pickups[t]; ok {
			entities.SpawnPickup(w, env, spec, obj.X, obj.Z)
			continue
		}
		if spec, ok := enemies[t]; ok {
			w.Spawn(entities.NewEnemy(env, spec, obj.X, obj.Z))
			continue
		}
		if t == ObjectPlayerSpawn {
			if env.Player != world.NoEntity {
				return fmt.Errorf("object %d at (%.2f, %.2f): %w", i, obj.X, obj.Z, world.ErrDuplicateSpawn)
			}
			env.Player = w.Spawn(entities.NewPlayer(env, mgl32.Vec3{obj.X, spawnHeight, obj.Z}))
			continue
		}

		log.WithFields(logrus.Fields{
			"index": i,
			"type":  obj.Type,
		}).Warn("Unknown object type, skipping")
	}

	log.WithFields(logrus.Fields{
		"width":    level.Width,
		"height":   level.Height,
		"objects":  len(level.Objects),
		"entities": w.Len(),
	}).Info("Level spawned")
	return nil
}
