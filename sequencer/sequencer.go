package sequencer

import (
	"log"
	"time"

	"github.com/vsariola/hotpluck"
)

// Sequencer walks a schedule, installing a freshly built unit into the graph
// for every note and holding each entry for beats * 60000 / BPM
// milliseconds. Chord entries install their notes in scripted succession
// before the hold. Run blocks; it is meant to be the body of the control
// goroutine.
type Sequencer struct {
	broker   *Broker
	graph    hotpluck.Graph
	maker    hotpluck.UnitMaker
	schedule hotpluck.Schedule
}

func New(broker *Broker, graph hotpluck.Graph, maker hotpluck.UnitMaker, schedule hotpluck.Schedule) *Sequencer {
	return &Sequencer{broker: broker, graph: graph, maker: maker, schedule: schedule}
}

// Run plays the schedule to the end, then returns. It returns early without
// error when closure is requested through the broker. Units displaced by an
// install are dropped here, on the control goroutine; the audio side never
// disposes of anything. Stream errors arriving through the broker are logged
// and playback continues.
func (s *Sequencer) Run() error {
	defer close(s.broker.FinishedControl)
	if err := s.schedule.Validate(); err != nil {
		return err
	}
	for _, entry := range s.schedule.Entries {
		for _, n := range entry.Notes {
			old := s.graph.Install(s.maker.MakeUnit(n.Frequency()))
			_ = old // displaced unit is garbage from here on
		}
		if !s.hold(entry.Duration(s.schedule.BPM)) {
			return nil
		}
	}
	return nil
}

// hold sleeps for d while draining broker messages. Returns false if closure
// was requested during the hold.
func (s *Sequencer) hold(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-s.broker.CloseControl:
			return false
		case msg := <-s.broker.ToControl:
			if msg.Err != nil {
				log.Printf("audio stream error: %v", msg.Err)
			}
		case <-timer.C:
			return true
		}
	}
}
