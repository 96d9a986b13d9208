// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const (
	defaultChunkSize = 4096
	// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row.
	maxEmptyReads = 64
	// maxPrealloc caps the samples ReadAll reserves up front from a
	// reported length; larger streams grow while they are read.
	maxPrealloc = 1 << 22
	// maxPadFrames is the largest shortfall ReadAll fills with silence.
	maxPadFrames = defaultChunkSize
)

// Buffer holds a whole decoded stream in planar layout: Data[c][i] is
// sample i of channel c. Every channel has the same length.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a zeroed buffer of channels x frames.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}

	return len(b.Data[0])
}

// Mono returns the equal-gain average of all channels.
func (b *Buffer) Mono() []float32 {
	return Downmix(b.Data)
}

// Source returns a Source that streams the buffer back interleaved.
func (b *Buffer) Source() *MemorySource {
	channels := b.Channels()
	frames := b.Frames()

	interleaved := make([]float32, frames*channels)
	for c, ch := range b.Data {
		for i := range frames {
			interleaved[i*channels+c] = ch[i]
		}
	}

	return NewMemorySource(b.SampleRate, channels, interleaved)
}

// Downmix reduces planar audio to a single channel. A single channel is
// copied unscaled; otherwise mono[i] = (1/C) * sum(planar[c][i]).
func Downmix(planar [][]float32) []float32 {
	if len(planar) == 0 {
		return nil
	}

	frames := len(planar[0])
	for _, ch := range planar[1:] {
		frames = min(frames, len(ch))
	}

	mono := make([]float32, frames)
	if len(planar) == 1 {
		copy(mono, planar[0])
		return mono
	}

	for _, ch := range planar {
		for i := range frames {
			mono[i] += ch[i]
		}
	}

	inv := float32(1.0) / float32(len(planar))
	for i := range mono {
		mono[i] *= inv
	}

	return mono
}

// ReadAll drains src into a planar Buffer.
//
// When src implements FrameCounter the result is exactly Frames() long:
// a stream up to maxPadFrames short is padded with silence and any excess
// is dropped. A stream that ends further short fails with
// ErrTruncatedSource. Otherwise the buffer holds every complete frame
// read before io.EOF, which may be none. ReadAll does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChannels, channels)
	}

	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, rate)
	}

	want := Frames(src)

	initial := 0
	if want > 0 {
		initial = int(min(want, int64(maxPrealloc/channels)))
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, 0, initial)
	}

	size := src.BufSize()
	if size < channels {
		size = defaultChunkSize
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}
	chunk := make([]float32, size)

	carry := 0 // samples of an incomplete frame kept at the front of chunk
	empty := 0
	for {
		n, err := src.ReadSamples(chunk[carry:])

		total := carry + n
		frames := total / channels
		for f := range frames {
			base := f * channels
			for c := range channels {
				data[c] = append(data[c], chunk[base+c])
			}
		}
		carry = copy(chunk, chunk[frames*channels:total])

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("reading samples: %w", io.ErrNoProgress)
			}
		} else {
			empty = 0
		}
	}

	if want >= 0 {
		if got := int64(len(data[0])); want-got > maxPadFrames {
			return nil, fmt.Errorf("%w: read %d of %d frames", ErrTruncatedSource, got, want)
		}

		for c := range data {
			data[c] = fitLength(data[c], int(want))
		}
	}

	return &Buffer{SampleRate: rate, Data: data}, nil
}

func fitLength(s []float32, n int) []float32 {
	if len(s) >= n {
		return s[:n]
	}

	if cap(s) >= n {
		return s[:n]
	}

	out := make([]float32, n)
	copy(out, s)

	return out
}

// MemorySource serves interleaved samples held in memory.
type MemorySource struct {
	sampleRate int
	channels   int
	data       []float32
	pos        int
}

// NewMemorySource wraps interleaved samples. The slice is not copied.
func NewMemorySource(sampleRate, channels int, interleaved []float32) *MemorySource {
	return &MemorySource{
		sampleRate: sampleRate,
		channels:   channels,
		data:       interleaved,
	}
}

func (m *MemorySource) SampleRate() int { return m.sampleRate }
func (m *MemorySource) Channels() int   { return m.channels }
func (m *MemorySource) BufSize() int    { return defaultChunkSize }
func (m *MemorySource) Close() error    { return nil }

func (m *MemorySource) Frames() int64 {
	if m.channels < 1 {
		return 0
	}

	return int64(len(m.data) / m.channels)
}

// Reset rewinds the source to its first frame.
func (m *MemorySource) Reset() { m.pos = 0 }

func (m *MemorySource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}

	whole := len(dst) - len(dst)%m.channels
	n := copy(dst[:whole], m.data[m.pos:])
	m.pos += n

	if m.pos >= len(m.data) {
		return n, io.EOF
	}

	return n, nil
}
