package graph

import (
	"math"

	"github.com/chewxy/math32"
)

// Panner is the fixed downstream stage of the chain: an equal-power stereo
// pan, set once at construction. Processing a frame is two multiplies, so it
// is safe on the real-time path.
type Panner struct {
	left, right float32
}

// NewPanner returns a panner for a position in [-1, 1], where -1 is hard
// left, 0 center and 1 hard right. Positions outside the range are clamped.
// Equal-power panning: the channel gains are the cosine and sine of the
// position mapped to a quarter circle, so the total power stays constant as
// the position moves.
func NewPanner(pan float32) Panner {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	angle := (pan + 1) * math.Pi / 4
	return Panner{left: math32.Cos(angle), right: math32.Sin(angle)}
}

// Process applies the channel gains to one frame.
func (p Panner) Process(left, right float32) (float32, float32) {
	return left * p.left, right * p.right
}
