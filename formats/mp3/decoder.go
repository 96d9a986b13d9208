// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels  = 2
	frameSize = channels * 2
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	odd        int // bytes of an incomplete sample kept at buf[0]
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // samples, not bytes

// Frames is derived from the decoded byte length, which go-mp3 only knows
// when the input is seekable.
func (s *source) Frames() int64 {
	n := s.dec.Length()
	if n < 0 {
		return -1
	}

	return n / frameSize
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.odd])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.odd:])
	total := s.odd + n
	samples := total / 2

	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}
	s.odd = copy(s.buf, s.buf[2*samples:total])

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
