// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/internal/pcm"
)

// Decoder reads uncompressed AIFF files with 8, 16, 24 or 32-bit samples.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	frameSize := int64(bitDepth/8) * int64(format.NumChannels)
	frames, err := pcm.ClampFrames(rs, int64(dec.NumSampleFrames), frameSize)
	if err != nil {
		return nil, err
	}

	// AIFF samples are signed at every depth
	return pcm.NewSource(dec, pcm.Format{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   bitDepth,
		Frames:     frames,
	}), nil
}
