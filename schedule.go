package hotpluck

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Entry is one step of a schedule: the notes to install into the graph
	// and how long to hold them, in beats. A single-note entry is a melody
	// step; a multi-note entry is a chord.
	Entry struct {
		Notes Chord `yaml:",flow"`
		Beats int
	}

	// Schedule is an ordered list of entries and the tempo to walk them at.
	// It is read once at startup, either from a literal or from a .yml/.json
	// file, and never reloaded.
	Schedule struct {
		BPM     int
		Entries []Entry
	}
)

var (
	ErrInvalidBPM      = errors.New("schedule BPM should be positive")
	ErrEmptySchedule   = errors.New("schedule has no entries")
	ErrEmptyEntry      = errors.New("schedule entry has no notes")
	ErrInvalidBeats    = errors.New("schedule entry beats should be positive")
	ErrInvalidPitch    = errors.New("note pitch class out of range")
	errScheduleParsing = errors.New("schedule could not be parsed")
)

// Duration returns how long the entry is held at the given tempo. The
// original millisecond arithmetic (beats * 60000 / bpm) is kept so schedules
// sound exactly as before.
func (e Entry) Duration(bpm int) time.Duration {
	return time.Duration(e.Beats*60000/bpm) * time.Millisecond
}

// Frames returns how many sample frames the entry spans when rendered at the
// given sample rate.
func (e Entry) Frames(bpm, sampleRate int) int {
	return e.Beats * 60 * sampleRate / bpm
}

func (s *Schedule) Validate() error {
	if s.BPM <= 0 {
		return ErrInvalidBPM
	}
	if len(s.Entries) == 0 {
		return ErrEmptySchedule
	}
	for i, e := range s.Entries {
		if len(e.Notes) == 0 {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyEntry)
		}
		if e.Beats <= 0 {
			return fmt.Errorf("entry %d: %w", i, ErrInvalidBeats)
		}
		for _, n := range e.Notes {
			if n.Pitch < 0 || int(n.Pitch) >= NumPitchClasses {
				return fmt.Errorf("entry %d, note %v: %w", i, n, ErrInvalidPitch)
			}
		}
	}
	return nil
}

// ParseSchedule reads a schedule from .json or .yml bytes, trying JSON first
// the same way song files are read elsewhere in the ecosystem.
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if errJSON := json.Unmarshal(data, &s); errJSON != nil {
		if errYaml := yaml.Unmarshal(data, &s); errYaml != nil {
			return Schedule{}, fmt.Errorf("%w as .json (%v) or .yml (%v)", errScheduleParsing, errJSON, errYaml)
		}
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

func note(p PitchClass, octave int) Note { return Note{Pitch: p, Octave: octave} }

func melody(steps ...Entry) []Entry { return steps }

func step(beats int, p PitchClass, octave int) Entry {
	return Entry{Notes: Chord{note(p, octave)}, Beats: beats}
}

// DefaultChord is the broken chord the engine demos live replacement with:
// its notes are installed in quick succession within one entry.
var DefaultChord = Chord{note(C, 0), note(E, 0), note(C, 1)}

// DefaultSchedule is the built-in tune, played when no schedule file is
// given.
var DefaultSchedule = Schedule{
	BPM: 160,
	Entries: melody(
		step(1, C, 0),
		step(1, D, 0),
		step(1, E, 0),
		step(1, F, 0),
		step(2, G, 0),
		step(2, G, 0),
		step(1, A, 0),
		step(1, A, 0),
		step(1, A, 0),
		step(1, A, 0),
		step(2, G, 0),
		step(1, A, 0),
		step(1, A, 0),
		step(1, A, 0),
		step(1, A, 0),
		step(2, G, 0),
		step(1, F, 0),
		step(1, F, 0),
		step(1, F, 0),
		step(1, F, 0),
		step(2, E, 0),
		step(2, E, 0),
		step(1, D, 0),
		step(1, D, 0),
		step(1, D, 0),
		step(1, D, 0),
		step(3, C, 0),
	),
}

// ChordSchedule wraps a single chord into a playable schedule, holding it
// for the given number of beats.
func ChordSchedule(chord Chord, beats, bpm int) Schedule {
	return Schedule{BPM: bpm, Entries: []Entry{{Notes: chord, Beats: beats}}}
}
