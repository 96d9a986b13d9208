// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/rrlite/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	// Read fills p with interleaved samples and returns how many values
	// (not frames) were written.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// Frames is the stream length; oggvorbis reports 0 when the input is not
// seekable, which is mapped to unknown.
func (s *source) Frames() int64 {
	if n := s.dec.Length(); n > 0 {
		return n
	}

	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	whole := len(dst) - len(dst)%s.channels
	if whole == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:whole])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
