package hotpluck

// Play renders a whole schedule to an interleaved stereo float32 buffer
// without a device. It is the non-real-time twin of the sequencer: units are
// installed at the sample offsets where the sequencer would install them,
// and the graph is pulled once per frame in between. Used for .wav/.raw
// export and for end-to-end tests.
func Play(g Graph, maker UnitMaker, schedule Schedule, sampleRate int) ([]float32, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	totalFrames := 0
	for _, entry := range schedule.Entries {
		totalFrames += entry.Frames(schedule.BPM, sampleRate)
	}
	buffer := make([]float32, 0, totalFrames*2)
	for _, entry := range schedule.Entries {
		for _, n := range entry.Notes {
			g.Install(maker.MakeUnit(n.Frequency())) // displaced unit is dropped here, outside the pull path
		}
		frames := entry.Frames(schedule.BPM, sampleRate)
		for i := 0; i < frames; i++ {
			left, right := g.PullFrame()
			buffer = append(buffer, left, right)
		}
	}
	return buffer, nil
}
