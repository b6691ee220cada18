package gameplay

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"worship/pkg/engine/input"
	"worship/pkg/engine/logger"
	"worship/pkg/engine/loop"
	"worship/pkg/engine/mathx"
	"worship/pkg/engine/metrics"
	"worship/pkg/game/devtools"
	"worship/pkg/game/messages"
	"worship/pkg/game/renderer"
	"worship/pkg/game/state"
)

// TurnSpeed is the keyboard turn rate in radians per second.
const TurnSpeed = 2.5

var slotActions = map[input.Action]int{
	input.ActionWeapon1: 1,
	input.ActionWeapon2: 2,
	input.ActionWeapon3: 3,
}

// listener is implemented by audio players that position sound around the
// camera.
type listener interface {
	SetListener(pos mgl32.Vec3, orientation mgl32.Quat)
}

// Gameplay is the running-game state.
type Gameplay struct {
	Game  *state.Game
	Held  *input.Held
	Stack *loop.Stack

	// Publisher receives debug snapshots when set.
	Publisher *devtools.Publisher

	// OutputDir is where screenshots and map dumps are written.
	OutputDir string

	// Columns is the number of visibility rays per rendered frame.
	Columns int

	log *logrus.Entry
}

// New creates the gameplay state for g.
func New(g *state.Game, held *input.Held, stack *loop.Stack) *Gameplay {
	return &Gameplay{
		Game:      g,
		Held:      held,
		Stack:     stack,
		OutputDir: ".",
		Columns:   renderer.DefaultColumns,
		log:       logger.For("gameplay").WithField("session", g.SessionID),
	}
}

func (s *Gameplay) Name() string { return "gameplay" }

// walkDirection sums the held movement actions on the XZ plane.
func walkDirection(held *input.Held, forward, right mgl32.Vec3) mgl32.Vec3 {
	var dir mgl32.Vec3
	if held.Has(input.ActionMoveForward) {
		dir = dir.Add(forward)
	}
	if held.Has(input.ActionMoveBack) {
		dir = dir.Sub(forward)
	}
	if held.Has(input.ActionStrafeLeft) {
		dir = dir.Sub(right)
	}
	if held.Has(input.ActionStrafeRight) {
		dir = dir.Add(right)
	}
	return mathx.SafeNormalize(mathx.Flatten(dir))
}

// turnDirection is +1 for left, -1 for right and 0 for neither or both.
func turnDirection(held *input.Held) float32 {
	var turn float32
	if held.Has(input.ActionTurnLeft) {
		turn++
	}
	if held.Has(input.ActionTurnRight) {
		turn--
	}
	return turn
}

// FixedUpdate walks the player and steps the world.
func (s *Gameplay) FixedUpdate(dt float32) {
	start := time.Now()
	if p, ok := s.Game.Player(); ok {
		body := p.Body()
		p.Walk(walkDirection(s.Held, body.Direction(), body.Right()), dt)
	}
	s.Game.World.FixedUpdate(dt)
	metrics.ObserveTick(time.Since(start))
}

// VariableUpdate handles per-frame input and steps the world's presentation.
func (s *Gameplay) VariableUpdate(dt float32) {
	if s.Held.Take(input.ActionQuit) {
		s.log.Info("Quit requested")
		s.Stack.Clear()
		return
	}
	if s.Held.Take(input.ActionPause) {
		s.Stack.Push(NewPause(s.Held, s.Stack, s.Game.Catalog))
		return
	}
	if s.Held.Take(input.ActionScreenshot) {
		s.screenshot()
	}
	if s.Held.Take(input.ActionDumpMap) {
		s.dumpMap()
	}

	w := s.Game.World
	p, hasPlayer := s.Game.Player()
	if hasPlayer {
		p.Turn(turnDirection(s.Held) * TurnSpeed * dt)
		for action, slot := range slotActions {
			if s.Held.Take(action) {
				p.SelectWeapon(w, slot)
			}
		}
		if s.Held.Has(input.ActionFire) {
			p.Fire(w)
		}
	}

	w.VariableUpdate(dt)
	s.Game.Update(dt)

	if l, ok := w.Audio.(listener); ok && hasPlayer {
		l.SetListener(p.Eye(), p.Body().Orientation)
	}
	metrics.SetPopulation(w.Len(), w.Lights().Len())
	if s.Publisher != nil {
		s.Publisher.Offer(s.Game)
	}
}

// Render hands the current view to the active renderer.
func (s *Gameplay) Render(dt float32) {
	renderer.RenderFrame(renderer.NewFrame(s.Game, s.Columns))
}

func (s *Gameplay) screenshot() {
	path, err := devtools.SaveScreenshot(s.OutputDir, s.Game.World)
	if err != nil {
		s.log.WithError(err).Error("Screenshot failed")
		return
	}
	s.log.WithField("path", path).Info("Screenshot saved")
}

func (s *Gameplay) dumpMap() {
	path, err := devtools.DumpMapToFile(s.OutputDir, s.Game.World)
	if err != nil {
		s.log.WithError(err).Error("Map dump failed")
		return
	}
	s.log.WithField("path", path).Info("Map dumped")
}

// Pause covers the gameplay state until pause is pressed again.
type Pause struct {
	held  *input.Held
	stack *loop.Stack
	text  string
	lines []string
}

// NewPause creates a pause overlay showing the localized pause text.
func NewPause(held *input.Held, stack *loop.Stack, catalog *messages.Catalog) *Pause {
	text := catalog.Text(messages.Paused)
	if text == "" {
		text = string(messages.Paused)
	}
	return &Pause{held: held, stack: stack, text: text, lines: BindingLines()}
}

// pauseActions are listed on the pause screen, in order.
var pauseActions = []input.Action{
	input.ActionMoveForward,
	input.ActionMoveBack,
	input.ActionStrafeLeft,
	input.ActionStrafeRight,
	input.ActionTurnLeft,
	input.ActionTurnRight,
	input.ActionFire,
	input.ActionWeapon1,
	input.ActionWeapon2,
	input.ActionWeapon3,
	input.ActionPause,
	input.ActionQuit,
}

// BindingLines labels each pause screen action with its bound codes.
func BindingLines() []string {
	byAction := input.GetBindingsByAction()
	lines := make([]string, 0, len(pauseActions))
	for _, a := range pauseActions {
		codes := strings.Join(byAction[a], ", ")
		if codes == "" {
			codes = "(unbound)"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", input.ActionName(a), codes))
	}
	return lines
}

func (s *Pause) Name() string { return "pause" }

func (s *Pause) FixedUpdate(dt float32) {}

func (s *Pause) VariableUpdate(dt float32) {
	switch {
	case s.held.Take(input.ActionQuit):
		s.stack.Clear()
	case s.held.Take(input.ActionPause):
		s.stack.Pop()
	}
}

func (s *Pause) Render(dt float32) {
	renderer.RenderOverlay(s.text)
	for _, line := range s.lines {
		renderer.RenderOverlay(line)
	}
}

var (
	_ loop.State = (*Gameplay)(nil)
	_ loop.State = (*Pause)(nil)
)
