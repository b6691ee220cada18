// Package loop drives fixed-timestep simulation and per-frame presentation.
package loop

import "time"

const (
	// TickRate is the number of fixed updates per second.
	TickRate = 60

	// maxBacklog caps how much unsimulated time a slow frame can carry over.
	maxBacklog = 250 * time.Millisecond
)

// Step is the duration of one fixed update.
const Step = time.Second / TickRate

// Loop converts wall clock frame times into fixed ticks on a state stack.
type Loop struct {
	stack       *Stack
	accumulator time.Duration
	ticks       uint64
}

// New creates a loop over stack.
func New(stack *Stack) *Loop {
	return &Loop{stack: stack}
}

// Stack returns the driven state stack.
func (l *Loop) Stack() *Stack {
	return l.stack
}

// Ticks returns the total fixed updates run.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Advance accounts for frameDelta of elapsed time: it runs as many fixed
// updates as fit, then one variable update and one render. It returns the
// number of fixed updates run.
func (l *Loop) Advance(frameDelta time.Duration) int {
	if frameDelta < 0 {
		frameDelta = 0
	}
	l.accumulator += frameDelta
	if l.accumulator > maxBacklog {
		l.accumulator = maxBacklog
	}

	fixed := float32(Step.Seconds())
	n := 0
	for l.accumulator >= Step {
		l.stack.FixedUpdate(fixed)
		l.accumulator -= Step
		n++
	}
	l.ticks += uint64(n)

	dt := float32(frameDelta.Seconds())
	l.stack.VariableUpdate(dt)
	l.stack.Render(dt)
	return n
}
