package hotpluck

type (
	// AudioSource is anything an audio device can pull stereo frames from.
	// PullFrame is invoked on the real-time path at the device's cadence and
	// must complete in bounded time without allocating, locking or making
	// system calls.
	AudioSource interface {
		PullFrame() (left, right float32)
	}

	// AudioContext is the audio device boundary. Play starts pulling frames
	// from src and keeps doing so until the returned Playback is closed.
	AudioContext interface {
		Play(src AudioSource) Playback
		Close() error
	}

	// Playback is a handle to an ongoing stream. Err reports the most recent
	// device error, if any; the control side polls it so that nothing ever
	// logs on the real-time path. Closing is safe at any time, concurrently
	// with the device pulling frames.
	Playback interface {
		Err() error
		Close() error
	}
)
