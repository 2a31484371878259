package sequencer_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vsariola/hotpluck"
	"github.com/vsariola/hotpluck/sequencer"
)

// fakeGraph records installs so tests can check order and disposal without
// rendering any audio.
type fakeGraph struct {
	mu        sync.Mutex
	installed []hotpluck.Unit
	live      hotpluck.Unit
}

func (g *fakeGraph) PullFrame() (left, right float32) { return 0, 0 }

func (g *fakeGraph) Install(u hotpluck.Unit) (old hotpluck.Unit) {
	g.mu.Lock()
	defer g.mu.Unlock()
	old = g.live
	g.live = u
	g.installed = append(g.installed, u)
	return old
}

func (g *fakeGraph) installs() []hotpluck.Unit {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]hotpluck.Unit(nil), g.installed...)
}

type freqUnit struct {
	freq float64
}

func (u *freqUnit) NextSample() (left, right float32) { return 0, 0 }

type freqMaker struct{}

func (freqMaker) MakeUnit(frequency float64) hotpluck.Unit { return &freqUnit{freq: frequency} }

// fastSchedule keeps the holds down to a millisecond so tests stay quick.
func fastSchedule(entries ...hotpluck.Entry) hotpluck.Schedule {
	return hotpluck.Schedule{BPM: 60000, Entries: entries}
}

func TestSequencerInstallsScheduleInOrder(t *testing.T) {
	g := &fakeGraph{}
	sched := fastSchedule(
		hotpluck.Entry{Notes: hotpluck.Chord{{Pitch: hotpluck.C, Octave: 0}}, Beats: 1},
		hotpluck.Entry{Notes: hotpluck.Chord{{Pitch: hotpluck.E, Octave: 0}, {Pitch: hotpluck.C, Octave: 1}}, Beats: 1},
	)
	s := sequencer.New(sequencer.NewBroker(), g, freqMaker{}, sched)
	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	installed := g.installs()
	if len(installed) != 3 {
		t.Fatalf("installed %d units, expected 3", len(installed))
	}
	wantFreqs := []float64{
		(hotpluck.Note{Pitch: hotpluck.C, Octave: 0}).Frequency(),
		(hotpluck.Note{Pitch: hotpluck.E, Octave: 0}).Frequency(),
		(hotpluck.Note{Pitch: hotpluck.C, Octave: 1}).Frequency(),
	}
	for i, u := range installed {
		if got := u.(*freqUnit).freq; got != wantFreqs[i] {
			t.Errorf("install %d: frequency %v, expected %v", i, got, wantFreqs[i])
		}
	}
}

func TestSequencerRejectsInvalidSchedule(t *testing.T) {
	g := &fakeGraph{}
	s := sequencer.New(sequencer.NewBroker(), g, freqMaker{}, hotpluck.Schedule{BPM: 160})
	if err := s.Run(); err == nil {
		t.Fatal("Run accepted an empty schedule")
	}
	if len(g.installs()) != 0 {
		t.Fatal("invalid schedule still installed units")
	}
}

func TestSequencerClosesFinishedControl(t *testing.T) {
	b := sequencer.NewBroker()
	s := sequencer.New(b, &fakeGraph{}, freqMaker{}, fastSchedule(
		hotpluck.Entry{Notes: hotpluck.Chord{{Pitch: hotpluck.A, Octave: 0}}, Beats: 1},
	))
	go s.Run()
	select {
	case <-b.FinishedControl:
	case <-time.After(3 * time.Second):
		t.Fatal("FinishedControl was not closed after the schedule ended")
	}
}

func TestSequencerStopsOnCloseRequest(t *testing.T) {
	b := sequencer.NewBroker()
	g := &fakeGraph{}
	// one entry held for a minute; closure must cut it short
	sched := hotpluck.Schedule{BPM: 1, Entries: []hotpluck.Entry{
		{Notes: hotpluck.Chord{{Pitch: hotpluck.C, Octave: 0}}, Beats: 1},
	}}
	s := sequencer.New(b, g, freqMaker{}, sched)
	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	sequencer.TrySend(b.CloseControl, struct{}{})
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop on close request")
	}
}

func TestTrySendNeverBlocks(t *testing.T) {
	c := make(chan int, 1)
	if !sequencer.TrySend(c, 1) {
		t.Fatal("TrySend failed on an empty channel")
	}
	if sequencer.TrySend(c, 2) {
		t.Fatal("TrySend succeeded on a full channel")
	}
}

func TestSequencerLogsStreamErrorsAndContinues(t *testing.T) {
	b := sequencer.NewBroker()
	g := &fakeGraph{}
	sched := fastSchedule(
		hotpluck.Entry{Notes: hotpluck.Chord{{Pitch: hotpluck.C, Octave: 0}}, Beats: 5},
	)
	s := sequencer.New(b, g, freqMaker{}, sched)
	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	// errors reported mid-hold must not stop the schedule
	sequencer.TrySend(b.ToControl, sequencer.MsgToControl{Err: errTest})
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not finish after a stream error")
	}
}

var errTest = errors.New("test stream error")
