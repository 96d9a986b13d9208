// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources and decoders for tests.
// Nothing here imports the audio package, so every package can use it.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrBroken is returned by failing sources and decoders.
var ErrBroken = errors.New("audiotest: broken stream")

// MockSource generates audio from a waveform function. It reports its
// length through Frames unless built with HideLength.
type MockSource struct {
	sampleRate  int
	channels    int
	frames      int // frames to generate
	generated   int
	waveform    func(frame, channel int) float32
	hideLength  bool
	failAfter   int // frames after which ReadSamples fails; <0 disables
	closed      bool
	chunkFrames int // caps frames per read; 0 = no cap
}

// NewMockSource creates a source of frames frames whose sample values come
// from waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
		failAfter:  -1,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewConstantSource generates the same value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewChannelConstantSource generates values[c] on channel c.
func NewChannelConstantSource(sampleRate, frames int, values ...float32) *MockSource {
	return NewMockSource(sampleRate, len(values), frames, func(_, c int) float32 {
		return values[c]
	})
}

// NewSineSource generates a sine wave at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewPlanarSource replays channel-major data: planar[c][i] is frame i of
// channel c. All channels must have the same length.
func NewPlanarSource(sampleRate int, planar [][]float32) *MockSource {
	frames := 0
	if len(planar) > 0 {
		frames = len(planar[0])
	}

	return NewMockSource(sampleRate, len(planar), frames, func(frame, c int) float32 {
		return planar[c][frame]
	})
}

// HideLength makes the source stop implementing a known length.
func (m *MockSource) HideLength() *MockSource {
	m.hideLength = true
	return m
}

// FailAfter makes ReadSamples return ErrBroken once frames have been served.
func (m *MockSource) FailAfter(frames int) *MockSource {
	m.failAfter = frames
	return m
}

// ChunkFrames limits how many frames a single ReadSamples call returns.
func (m *MockSource) ChunkFrames(frames int) *MockSource {
	m.chunkFrames = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Frames returns the total length, or -1 when the length is hidden.
func (m *MockSource) Frames() int64 {
	if m.hideLength {
		return -1
	}

	return int64(m.frames)
}

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrBroken
	}

	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	if m.chunkFrames > 0 {
		count = min(count, m.chunkFrames)
	}
	if m.failAfter >= 0 {
		count = min(count, m.failAfter-m.generated)
	}

	for f := range count {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}

	m.generated += count
	n := count * m.channels

	if m.generated >= m.frames {
		return n, io.EOF
	}

	return n, nil
}
