// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/internal/pcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decoder reads PCM WAV files with 8, 16, 24 or 32-bit integer samples.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio seeks between chunks
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if f := dec.WavAudioFormat; f != formatPCM && f != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, f)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	frameSize := int64(bitDepth/8) * int64(channels)
	frames, err := pcm.ClampFrames(rs, dec.PCMLen()/frameSize, frameSize)
	if err != nil {
		return nil, err
	}

	return pcm.NewSource(dec, pcm.Format{
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
		Unsigned8:  true,
		Frames:     frames,
	}), nil
}
