package entities

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/messages"
)

const tick = float32(1) / 60

// recordingHost remembers HUD events.
type recordingHost struct {
	messages []messages.ID
	flashes  []Flash
}

func (h *recordingHost) DisplayMessage(id messages.ID) { h.messages = append(h.messages, id) }

func (h *recordingHost) FlashScreen(f Flash) { h.flashes = append(h.flashes, f) }

type fixture struct {
	world *world.World
	env   *Env
	host  *recordingHost
	audio *audio.Recorder
}

// newFixture builds a world from rows of '#' (wall) and '.' (air).
func newFixture(t *testing.T, rows ...string) *fixture {
	t.Helper()
	g := world.NewGrid(len(rows[0]), len(rows))
	for z, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				g.SetType(world.Coord{X: x, Y: z}, world.TileWall)
			}
		}
	}
	host := &recordingHost{}
	rec := &audio.Recorder{}
	w := world.New(g)
	w.Audio = rec
	return &fixture{
		world: w,
		env:   NewEnv(host, 1, config.Normal),
		host:  host,
		audio: rec,
	}
}

func (f *fixture) spawnPlayer(x, z float32) *Player {
	p := NewPlayer(f.env, mgl32.Vec3{x, 0.5, z})
	f.env.Player = f.world.Spawn(p)
	return p
}

func (f *fixture) run(t *testing.T, seconds float32) {
	t.Helper()
	for i := 0; i < int(seconds/tick+0.5); i++ {
		f.world.FixedUpdate(tick)
		f.world.VariableUpdate(tick)
	}
}

func (f *fixture) count(k Kind) int {
	n := 0
	f.world.Each(func(e world.Entity) {
		if KindOf(e) == k && !e.Body().Destroyed() {
			n++
		}
	})
	return n
}

// facingX looks down the -X axis.
var facingX = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
