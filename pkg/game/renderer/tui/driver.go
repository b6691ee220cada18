package tui

import (
	"context"
	"time"

	"worship/pkg/engine/input"
	"worship/pkg/engine/loop"
)

const (
	// FrameInterval is how often the driver advances the loop.
	FrameInterval = time.Second / 30

	// HoldDuration keeps an action held after its last key event. Terminals
	// report key repeats, not key releases.
	HoldDuration = 200 * time.Millisecond
)

// Driver feeds terminal key events into held and advances the loop.
type Driver struct {
	Loop     *loop.Loop
	Held     *input.Held
	Interval time.Duration

	// now is replaced in tests.
	now     func() time.Time
	pressed map[input.Action]time.Time
}

// NewDriver creates a driver running at FrameInterval.
func NewDriver(l *loop.Loop, held *input.Held) *Driver {
	return &Driver{
		Loop:     l,
		Held:     held,
		Interval: FrameInterval,
		now:      time.Now,
		pressed:  make(map[input.Action]time.Time),
	}
}

// Run advances the loop until ctx is done, events is closed, or the state
// stack empties.
func (d *Driver) Run(ctx context.Context, events <-chan input.RawInput) error {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				d.Loop.Stack().Clear()
				return nil
			}
			d.press(ev)
		case <-ticker.C:
			now := d.now()
			d.step(now, now.Sub(last))
			last = now
			if d.Loop.Stack().Empty() {
				return nil
			}
		}
	}
}

func (d *Driver) press(ev input.RawInput) {
	intent := input.MapToIntent(input.NewDebouncedInput(ev))
	if intent.Action == input.ActionNone {
		return
	}
	at := ev.Timestamp
	if at.IsZero() {
		at = d.now()
	}
	d.pressed[intent.Action] = at
}

// step expires stale presses, publishes the rest and advances the loop.
func (d *Driver) step(now time.Time, elapsed time.Duration) {
	for a, at := range d.pressed {
		if now.Sub(at) > HoldDuration {
			delete(d.pressed, a)
			d.Held.Release(a)
			continue
		}
		d.Held.Set(a)
	}
	d.Loop.Advance(elapsed)
}
