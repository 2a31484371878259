// Package hotpluck is a small real-time audio engine that plays a schedule
// of notes while the sound-generating unit is swapped live, without ever
// glitching the audio stream. The data model and the capability interfaces
// live in this package; the moving parts are in the subpackages: graph holds
// the replaceable signal chain, synth the units that can be installed into
// it, sequencer the control loop that swaps them, and oto the device output.
package hotpluck

type (
	// Unit is a synthesis node: it produces one stereo frame per call,
	// purely as a function of its internal state. NextSample is called on
	// the real-time path, once per output frame, so implementations must not
	// allocate or block after construction.
	Unit interface {
		NextSample() (left, right float32)
	}

	// UnitMaker constructs new Units for a given fundamental frequency. The
	// synthesis algorithm and its fixed parameters are the maker's business;
	// the rest of the engine only cares that the result implements Unit.
	UnitMaker interface {
		MakeUnit(frequency float64) Unit
	}

	// Graph is the capability the control side needs from a signal chain:
	// install a new unit into the replaceable slot, getting the displaced
	// one back for disposal, and pull rendered frames out. graph.Host is
	// the implementation; this interface exists so the sequencer and the
	// offline renderer can be tested against fakes.
	Graph interface {
		AudioSource
		Install(u Unit) (old Unit)
	}
)
