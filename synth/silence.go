package synth

// Silence is the unit a chain starts from before the first real install: it
// produces the zero signal forever.
type Silence struct{}

func (Silence) NextSample() (left, right float32) { return 0, 0 }
