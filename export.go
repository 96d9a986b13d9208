// SPDX-License-Identifier: EPL-2.0

package rrlite

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/aiff"
	"github.com/ik5/rrlite/formats/wav"
	"github.com/ik5/rrlite/sampler"
)

// soundSource replays a loaded sound. A targetRate <= 0 is replaced with
// the sound's original rate.
func soundSource(s *sampler.Sound, targetRate int) (*audio.MemorySource, int, error) {
	if s == nil || !s.IsLoaded() {
		return nil, 0, ErrNotLoaded
	}

	rate := int(math.Round(s.OriginalSampleRate()))
	if targetRate <= 0 {
		targetRate = rate
	}

	return audio.NewMemorySource(rate, 1, s.Buffer()), targetRate, nil
}

// ExportMono16 renders a loaded sound as 16-bit PCM at targetRate.
func ExportMono16(s *sampler.Sound, targetRate, bufSize int) ([]int16, int, error) {
	src, rate, err := soundSource(s, targetRate)
	if err != nil {
		return nil, 0, err
	}

	return RenderMono16(src, rate, bufSize)
}

// ExportMono renders a loaded sound as float samples at targetRate.
func ExportMono(s *sampler.Sound, targetRate, bufSize int) ([]float32, int, error) {
	src, rate, err := soundSource(s, targetRate)
	if err != nil {
		return nil, 0, err
	}

	return RenderMono(src, rate, bufSize)
}

// WriteSoundWAV writes a loaded sound to w as a mono 16-bit WAV file.
func WriteSoundWAV(w io.Writer, s *sampler.Sound, targetRate int) error {
	pcm16, rate, err := ExportMono16(s, targetRate, defaultBufSize)
	if err != nil {
		return err
	}

	if err := wav.WriteWAV16(w, rate, pcm16); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteSoundAIFF writes a loaded sound to w as a mono 16-bit AIFF file.
func WriteSoundAIFF(w io.WriteSeeker, s *sampler.Sound, targetRate int) error {
	mono, rate, err := ExportMono(s, targetRate, defaultBufSize)
	if err != nil {
		return err
	}

	if err := aiff.WriteFloat32(w, rate, mono); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
