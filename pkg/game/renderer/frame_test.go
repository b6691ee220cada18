package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/entities"
	"worship/pkg/game/messages"
	"worship/pkg/game/state"
)

func newTestGame(t *testing.T) *state.Game {
	t.Helper()
	g := world.NewGrid(8, 3)
	for x := 0; x < 8; x++ {
		g.SetType(world.Coord{X: x, Y: 0}, world.TileWall)
		g.SetType(world.Coord{X: x, Y: 2}, world.TileWall)
	}
	return state.NewGame(world.New(g), config.Normal, messages.English(), 1)
}

func TestNewFrame_WithoutPlayer(t *testing.T) {
	g := newTestGame(t)
	f := NewFrame(g, DefaultColumns)
	if f.Grid == nil || len(f.Entities) != 0 || f.HUD.Alive {
		t.Errorf("NewFrame without player = %+v", f)
	}
}

func TestNewFrame(t *testing.T) {
	g := newTestGame(t)
	p := entities.NewPlayer(g.Env, mgl32.Vec3{6.5, 0.5, 1.5})
	p.Body().Rotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	g.Env.Player = g.World.Spawn(p)
	entities.SpawnPickup(g.World, g.Env, entities.CellsPickup, 2.5, 1.5)
	g.DisplayMessage(messages.PickupShells)

	f := NewFrame(g, DefaultColumns)

	if !f.HUD.Alive || f.HUD.Health != entities.PlayerMaxHealth {
		t.Errorf("HUD = %+v", f.HUD)
	}
	if f.Message != string(messages.PickupShells) {
		t.Errorf("Message = %q", f.Message)
	}
	if f.Lights.Len() != 1 {
		t.Errorf("Lights.Len() = %d, want 1", f.Lights.Len())
	}

	var sawPickup bool
	for _, v := range f.Entities {
		if v.Kind == entities.KindPickup && v.Name == "cells" {
			sawPickup = true
		}
	}
	if !sawPickup {
		t.Errorf("Entities = %+v, want the cells pickup in view", f.Entities)
	}
	if len(f.Chunks) != 1 || f.Chunks[0] != (world.Coord{}) {
		t.Errorf("Chunks = %v, want [{0 0}]", f.Chunks)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		dir  mgl32.Vec3
		want float32
	}{
		{mgl32.Vec3{0, 0, -1}, 0},
		{mgl32.Vec3{-1, 0, 0}, math.Pi / 2},
		{mgl32.Vec3{1, 0, 0}, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := Heading(tt.dir); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("Heading(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	SetRenderer(&r)
	defer SetRenderer(nil)

	RenderFrame(&Frame{Tick: 3})
	RenderOverlay("Paused.")
	if r.Frames != 1 || r.Last.Tick != 3 || len(r.Overlays) != 1 {
		t.Errorf("Recorder = %+v", r)
	}
	RenderFrame(&Frame{})
	if len(r.Overlays) != 0 {
		t.Error("overlay survived a new frame")
	}
}
