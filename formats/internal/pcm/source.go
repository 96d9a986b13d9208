// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/rrlite/utils"
)

const defaultBufSize = 4096

// Reader is the read side shared by go-audio's wav and aiff decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Format describes the integer stream a Reader produces.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned8 marks 8-bit data stored as unsigned, as in WAV.
	Unsigned8 bool
	// Frames is the stream length, or -1 when unknown.
	Frames int64
}

// Source converts the integers a Reader yields to float32 in [-1, 1).
type Source struct {
	dec  Reader
	f    Format
	bias int
	buf  *goaudio.IntBuffer
}

func NewSource(dec Reader, f Format) *Source {
	s := &Source{dec: dec, f: f}
	if f.BitDepth == 8 && f.Unsigned8 {
		s.bias = 128
	}

	return s
}

func (s *Source) SampleRate() int { return s.f.SampleRate }
func (s *Source) Channels() int   { return s.f.Channels }
func (s *Source) Frames() int64   { return s.f.Frames }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}

	return defaultBufSize
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         &goaudio.Format{NumChannels: s.f.Channels, SampleRate: s.f.SampleRate},
			SourceBitDepth: s.f.BitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}

		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v-s.bias, s.f.BitDepth)
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}

	// a short read means the data chunk is exhausted
	if n < len(dst) || err == io.EOF {
		return n, io.EOF
	}

	return n, nil
}

// ClampFrames limits a frame count taken from a file header to what the
// bytes left in rs can hold. The read position of rs is restored.
func ClampFrames(rs io.Seeker, frames, frameSize int64) (int64, error) {
	if frames < 0 || frameSize <= 0 {
		return frames, nil
	}

	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("locating pcm data: %w", err)
	}

	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("locating pcm data: %w", err)
	}

	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return 0, fmt.Errorf("locating pcm data: %w", err)
	}

	return min(frames, max(end-cur, 0)/frameSize), nil
}
