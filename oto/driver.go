package oto

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/hotpluck"
)

// Format is the sample representation the device asked for. The driver
// converts the engine's float32 frames to it on the fly.
type Format int

const (
	FormatFloat32 Format = iota // 32-bit little-endian IEEE float
	FormatInt16                 // 16-bit little-endian signed PCM
	FormatUint8                 // 8-bit unsigned PCM
)

var ErrUnsupportedFormat = errors.New("unsupported sample format")

func (f Format) oto() (oto.Format, error) {
	switch f {
	case FormatFloat32:
		return oto.FormatFloat32LE, nil
	case FormatInt16:
		return oto.FormatSignedInt16LE, nil
	case FormatUint8:
		return oto.FormatUnsignedInt8, nil
	}
	return 0, ErrUnsupportedFormat
}

// ByteLen returns the encoded size of one sample.
func (f Format) ByteLen() int {
	switch f {
	case FormatInt16:
		return 2
	case FormatUint8:
		return 1
	}
	return 4
}

// Driver bridges the device's output buffer to repeated PullFrame calls. It
// implements io.Reader the way the device wants its data: for every frame
// slot in p it pulls one frame from the source, converts both samples to the
// output format and writes the channels by their index parity, even channels
// carrying left and odd channels right. Read runs on the real-time path and
// therefore never allocates, locks or logs.
type Driver struct {
	src      hotpluck.AudioSource
	channels int
	format   Format
}

func NewDriver(src hotpluck.AudioSource, channels int, format Format) *Driver {
	return &Driver{src: src, channels: channels, format: format}
}

func (d *Driver) Read(p []byte) (n int, err error) {
	frameBytes := d.channels * d.format.ByteLen()
	frames := len(p) / frameBytes
	for i := 0; i < frames; i++ {
		left, right := d.src.PullFrame()
		for ch := 0; ch < d.channels; ch++ {
			sample := left
			if ch&1 == 1 {
				sample = right
			}
			d.put(p[n:], sample)
			n += d.format.ByteLen()
		}
	}
	return n, nil
}

func (d *Driver) put(p []byte, sample float32) {
	switch d.format {
	case FormatInt16:
		binary.LittleEndian.PutUint16(p, uint16(pcm16(sample)))
	case FormatUint8:
		p[0] = pcm8(sample)
	default:
		binary.LittleEndian.PutUint32(p, math.Float32bits(sample))
	}
}

// pcm16 clamps to [-1, 1] and scales to the full signed 16-bit range.
func pcm16(sample float32) int16 {
	if sample <= -1 {
		return -math.MaxInt16
	}
	if sample >= 1 {
		return math.MaxInt16
	}
	return int16(sample * math.MaxInt16)
}

// pcm8 clamps to [-1, 1] and maps it onto the unsigned 8-bit range, with 128
// as the zero level.
func pcm8(sample float32) byte {
	if sample <= -1 {
		return 0
	}
	if sample >= 1 {
		return math.MaxUint8
	}
	return byte((sample + 1) * 128)
}
