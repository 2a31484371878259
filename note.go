package hotpluck

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

type (
	// PitchClass is one of the 12 equal-tempered semitone positions within
	// an octave, named the German way: C, Cis, D, ..., A, Ais, H.
	PitchClass int

	// Note is a pitch class in a particular octave. Octave 0 is the
	// reference octave: A in octave 0 is the 440 Hz anchor. Notes are value
	// types and never mutated once built.
	Note struct {
		Pitch  PitchClass
		Octave int
	}

	// Chord is an ordered list of notes meant to sound together; when
	// played, its notes are plucked in scripted succession.
	Chord []Note
)

const (
	C PitchClass = iota
	Cis
	D
	Dis
	E
	F
	Fis
	G
	Gis
	A
	Ais
	H
)

const NumPitchClasses = 12

// referenceSemitone is the semitone index of the 440 Hz anchor (A, octave 0).
const referenceSemitone = 9

var pitchNames = [NumPitchClasses]string{
	"C", "Cis", "D", "Dis", "E", "F", "Fis", "G", "Gis", "A", "Ais", "H",
}

func (p PitchClass) String() string {
	if p < 0 || int(p) >= NumPitchClasses {
		return fmt.Sprintf("PitchClass(%d)", int(p))
	}
	return pitchNames[p]
}

func (p PitchClass) MarshalYAML() (interface{}, error) {
	if p < 0 || int(p) >= NumPitchClasses {
		return nil, fmt.Errorf("cannot marshal pitch class %d, should be 0-%d", int(p), NumPitchClasses-1)
	}
	return pitchNames[p], nil
}

func (p *PitchClass) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("pitch class was not a string: %w", err)
	}
	for i, n := range pitchNames {
		if n == name {
			*p = PitchClass(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pitch class %q", name)
}

// Frequency returns the fundamental frequency of the note in Hz, in
// equal-tempered tuning anchored to A = 440 Hz in octave 0. It is a total
// function: every pitch class and octave maps to a positive frequency.
func (n Note) Frequency() float64 {
	semitone := int(n.Pitch) + NumPitchClasses*n.Octave
	return 440 * math.Pow(2, float64(semitone-referenceSemitone)/float64(NumPitchClasses))
}

func (n Note) String() string {
	return fmt.Sprintf("%v%d", n.Pitch, n.Octave)
}
