// Package synth contains the audio units that can be installed into a
// graph.Host. Units are built on the control side and are allocation-free
// once constructed; the graph only ever talks to them through
// hotpluck.Unit.
package synth

import (
	"github.com/vsariola/hotpluck"
)

// Pluck is a Karplus-Strong plucked string: a delay line the length of one
// period, excited with a noise burst and fed back through a damped two-point
// average. The string rings at sampleRate/len(delay) Hz and decays at a rate
// set by the damping factor. All state is allocated in NewPluck; NextSample
// just walks the delay line.
type Pluck struct {
	delay   []float32
	pos     int
	last    float32
	damping float32
}

const (
	// DefaultGain is the excitation energy of the initial noise burst.
	DefaultGain = 0.5
	// DefaultDamping is the per-period feedback decay factor.
	DefaultDamping = 0.9
)

// NewPluck builds a string tuned to frequency Hz at the given sample rate.
// gain scales the excitation noise burst and damping in (0, 1) sets how fast
// the string decays.
func NewPluck(sampleRate int, frequency float64, gain, damping float32) *Pluck {
	n := int(float64(sampleRate)/frequency + 0.5)
	if n < 2 {
		n = 2
	}
	p := &Pluck{delay: make([]float32, n), damping: damping}
	// excite the string with a deterministic noise burst
	seed := uint32(1)
	for i := range p.delay {
		seed = seed*1664525 + 1013904223
		p.delay[i] = gain * (float32(seed>>8)/float32(1<<23) - 1)
	}
	return p
}

// NextSample advances the string by one tick. The same sample is returned on
// both channels; stereo placement is the panner's job downstream.
func (p *Pluck) NextSample() (left, right float32) {
	out := p.delay[p.pos]
	p.delay[p.pos] = p.damping * 0.5 * (out + p.last)
	p.last = out
	p.pos++
	if p.pos == len(p.delay) {
		p.pos = 0
	}
	return out, out
}

// Period returns the length of the string in samples.
func (p *Pluck) Period() int { return len(p.delay) }

// PluckMaker builds Pluck units with fixed synthesis parameters for varying
// frequencies. It implements hotpluck.UnitMaker.
type PluckMaker struct {
	SampleRate int
	Gain       float32
	Damping    float32
}

func (m PluckMaker) MakeUnit(frequency float64) hotpluck.Unit {
	return NewPluck(m.SampleRate, frequency, m.Gain, m.Damping)
}
