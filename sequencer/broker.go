// Package sequencer drives the schedule from an ordinary, non-real-time
// goroutine: it resolves frequencies, builds new units, installs them into
// the graph and sleeps between entries. It is the only writer of the
// replaceable slot.
package sequencer

type (
	// Broker carries messages between the device side and the control
	// goroutine. Communication is one-way into the control goroutine; the
	// device side always uses TrySend so a full channel can never stall it.
	//
	// For closing, CloseControl has a capacity of 1, so requesting closure
	// never blocks; if the channel is already full, someone else has already
	// requested it and dropping the message is fine. FinishedControl is
	// never sent to, only closed, so waiting for the control goroutine is
	// "<-broker.FinishedControl".
	Broker struct {
		ToControl chan MsgToControl

		CloseControl    chan struct{}
		FinishedControl chan struct{}
	}

	// MsgToControl reports a playback stream error. The control goroutine
	// logs it and keeps driving the schedule; stream errors degrade
	// playback, they do not abort it.
	MsgToControl struct {
		Err error
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToControl:       make(chan MsgToControl, 64),
		CloseControl:    make(chan struct{}, 1),
		FinishedControl: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not
// full. It is guaranteed to be non-blocking. Returns true if the value was
// sent, false otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
