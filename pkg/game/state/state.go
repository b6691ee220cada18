// Package state holds the session state shared by the gameplay loop and the
// renderers.
package state

import (
	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/entities"
	"worship/pkg/game/messages"
)

const (
	maxMessages = 5

	// MessageDuration is how long the current message stays on screen.
	MessageDuration = 5

	// FlashDuration is how long a screen flash lasts.
	FlashDuration = 0.5
	flashAlpha    = 0.25
)

var flashColors = map[entities.Flash]mgl32.Vec3{
	entities.FlashPickup: {1, 1, 1},
	entities.FlashPain:   {1, 0, 0},
}

// Game represents one play session of Worship.
type Game struct {
	World      *world.World
	Env        *entities.Env
	Difficulty config.Difficulty
	Catalog    *messages.Catalog

	// SessionID tags logs and debug snapshots.
	SessionID string

	// Messages is the log of the last few messages, oldest first.
	Messages []string

	message      string
	messageTimer float32

	flash      entities.Flash
	flashTimer float32
}

// NewGame creates a game around w. The entity environment is seeded with seed
// and routes HUD events back to the game.
func NewGame(w *world.World, difficulty config.Difficulty, catalog *messages.Catalog, seed int64) *Game {
	g := &Game{
		World:      w,
		Difficulty: difficulty,
		Catalog:    catalog,
		Messages:   make([]string, 0),
	}
	g.Env = entities.NewEnv(g, seed, difficulty)
	return g
}

// Player returns the player entity, if it has spawned.
func (g *Game) Player() (*entities.Player, bool) {
	e, ok := g.World.Entity(g.Env.Player)
	if !ok {
		return nil, false
	}
	p, ok := e.(*entities.Player)
	return p, ok
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// DisplayMessage shows a translated message and logs it.
func (g *Game) DisplayMessage(id messages.ID) {
	text := g.Catalog.Text(id)
	if text == "" {
		return
	}
	g.message = text
	g.messageTimer = MessageDuration
	g.AddMessage(text)
}

// Message returns the message currently on screen, or "".
func (g *Game) Message() string {
	if g.messageTimer <= 0 {
		return ""
	}
	return g.message
}

// FlashScreen starts a full-screen flash.
func (g *Game) FlashScreen(f entities.Flash) {
	if f == entities.FlashNone {
		return
	}
	g.flash = f
	g.flashTimer = FlashDuration
}

// Flash returns the current flash color and alpha. Alpha is zero when no
// flash is active.
func (g *Game) Flash() (mgl32.Vec3, float32) {
	if g.flashTimer <= 0 {
		return mgl32.Vec3{}, 0
	}
	return flashColors[g.flash], flashAlpha
}

// Update counts the HUD timers down.
func (g *Game) Update(dt float32) {
	if g.messageTimer > 0 {
		g.messageTimer -= dt
	}
	if g.flashTimer > 0 {
		g.flashTimer -= dt
		if g.flashTimer <= 0 {
			g.flash = entities.FlashNone
		}
	}
}
