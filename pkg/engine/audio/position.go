package audio

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"worship/pkg/engine/mathx"
)

// rolloff is the distance at which a positioned clip plays at half gain.
const rolloff = 4.0

// Gain is the loudness of a clip emitted at src for a listener at ear.
// It is 1 at the listener and halves at the rolloff distance.
func Gain(ear, src mgl32.Vec3) float64 {
	d := float64(src.Sub(ear).Len())
	return 1 / (1 + d/rolloff)
}

// Pan is the stereo balance of a clip emitted at src, from -1 (left) to 1
// (right), relative to where the listener faces on the horizontal plane.
func Pan(ear mgl32.Vec3, orientation mgl32.Quat, src mgl32.Vec3) float64 {
	to := mathx.SafeNormalize(mathx.Flatten(src.Sub(ear)))
	right := mathx.SafeNormalize(mathx.Flatten(orientation.Rotate(mgl32.Vec3{1, 0, 0})))
	p := float64(to.Dot(right))
	return math.Max(-1, math.Min(1, p))
}
