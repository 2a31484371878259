// Package oto outputs audio through github.com/ebitengine/oto/v3. The
// device pulls sample data by calling Driver.Read on its own schedule, which
// makes Read the real-time path: it converts pulled frames to the device
// format and nothing else.
package oto

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/hotpluck"
)

// Context wraps an oto context with the stream parameters negotiated at
// startup. The parameters are fixed for the lifetime of the stream.
type Context struct {
	ctx      *oto.Context
	channels int
	format   Format
}

// NewContext acquires the audio device. Failure here is fatal for the
// caller; there is no transient condition to retry against.
func NewContext(sampleRate, channelCount int, format Format) (*Context, error) {
	otoFormat, err := format.oto()
	if err != nil {
		return nil, err
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       otoFormat,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, channels: channelCount, format: format}, nil
}

// Play starts pulling frames from src until the returned playback is
// closed. Implements hotpluck.AudioContext.
func (c *Context) Play(src hotpluck.AudioSource) hotpluck.Playback {
	player := c.ctx.NewPlayer(NewDriver(src, c.channels, c.format))
	player.Play()
	return &playback{player: player}
}

func (c *Context) Close() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// playback implements hotpluck.Playback over an oto player. Err is polled by
// the control side so device errors get logged off the real-time path.
type playback struct {
	player *oto.Player
}

func (p *playback) Err() error { return p.player.Err() }

func (p *playback) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
