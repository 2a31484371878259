// Package graph holds the fixed-shape signal chain and the mechanism that
// lets the control side replace the sound-generating unit while the audio
// side keeps pulling frames from it. The chain is deliberately rigid: one
// replaceable unit slot feeding one fixed panner stage. The only shared
// mutable state crossing the thread boundary is the slot itself.
package graph

import (
	"sync/atomic"

	"github.com/vsariola/hotpluck"
)

type (
	// Host owns the chain and the replaceable slot. Exactly two goroutines
	// touch a Host during playback: the audio goroutine calling PullFrame
	// and the control goroutine calling Install. Neither can ever block the
	// other: the slot is published through a single atomic pointer swap, so
	// a pull either sees the old unit in full or the new unit in full, never
	// a mix.
	Host struct {
		slot   atomic.Pointer[slot]
		panner Panner
	}

	// slot wraps the interface value so that it can be published with one
	// pointer store. The wrapper is allocated on the control side during
	// Install; the audio side only ever loads it.
	slot struct {
		unit hotpluck.Unit
	}
)

// NewHost creates a host with an empty slot and the downstream panner set to
// the given position. An empty slot renders silence.
func NewHost(pan float32) *Host {
	return &Host{panner: NewPanner(pan)}
}

// PullFrame renders one stereo frame: it advances the installed unit by one
// tick and routes the result through the panner. Called by the audio
// goroutine only. It does not allocate, lock, log or make system calls; a
// concurrent Install is observed atomically, at the latest on the next call.
func (h *Host) PullFrame() (left, right float32) {
	s := h.slot.Load()
	if s == nil {
		return 0, 0
	}
	left, right = s.unit.NextSample()
	return h.panner.Process(left, right)
}

// Install publishes u as the new live unit and returns the displaced one,
// nil on the first install. Called by the control goroutine only. It never
// waits on the audio goroutine, and the returned unit must be disposed of
// here on the control side; the audio side never deallocates. Installing nil
// empties the slot. Installs are observed by PullFrame in the order they
// were made.
func (h *Host) Install(u hotpluck.Unit) (old hotpluck.Unit) {
	var next *slot
	if u != nil {
		next = &slot{unit: u}
	}
	if prev := h.slot.Swap(next); prev != nil {
		return prev.unit
	}
	return nil
}
