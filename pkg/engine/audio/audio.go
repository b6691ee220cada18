// Package audio plays sound clips for the simulation.
package audio

import "github.com/go-gl/mathgl/mgl32"

// Clip names a sound resource. The empty clip plays nothing.
type Clip string

// Player is what the simulation asks to make sounds.
type Player interface {
	// Play plays a clip without positioning.
	Play(clip Clip)

	// PlayAt plays a clip as if emitted at pos.
	PlayAt(clip Clip, pos mgl32.Vec3)
}

// Null is a Player that discards every request.
type Null struct{}

func (Null) Play(Clip) {}

func (Null) PlayAt(Clip, mgl32.Vec3) {}

// Recorder is a Player that remembers every request, in order.
type Recorder struct {
	Played []Played
}

// Played is one request seen by a Recorder.
type Played struct {
	Clip       Clip
	Position   mgl32.Vec3
	Positioned bool
}

func (r *Recorder) Play(clip Clip) {
	if clip == "" {
		return
	}
	r.Played = append(r.Played, Played{Clip: clip})
}

func (r *Recorder) PlayAt(clip Clip, pos mgl32.Vec3) {
	if clip == "" {
		return
	}
	r.Played = append(r.Played, Played{Clip: clip, Position: pos, Positioned: true})
}

// Count returns how many times clip was played.
func (r *Recorder) Count(clip Clip) int {
	n := 0
	for _, p := range r.Played {
		if p.Clip == clip {
			n++
		}
	}
	return n
}
