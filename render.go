// SPDX-License-Identifier: EPL-2.0

package rrlite

import (
	"fmt"
	"io"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/utils"
)

const defaultBufSize = 4096

// RenderMono resamples src to targetRate, mixes it to mono and collects
// the whole stream. bufSize is the read block size; values below one use
// a default. The returned rate is always targetRate.
func RenderMono(src audio.Source, targetRate, bufSize int) ([]float32, int, error) {
	if targetRate <= 0 {
		return nil, targetRate, fmt.Errorf("%w: target %d", audio.ErrInvalidSampleRate, targetRate)
	}

	if src.Channels() < 1 {
		return nil, targetRate, fmt.Errorf("%w: got %d", audio.ErrInvalidChannels, src.Channels())
	}

	if src.SampleRate() <= 0 {
		return nil, targetRate, fmt.Errorf("%w: got %d", audio.ErrInvalidSampleRate, src.SampleRate())
	}

	if bufSize < 1 {
		bufSize = defaultBufSize
	}

	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))

	out := make([]float32, 0, max(mono.Frames(), 0))
	buf := make([]float32, bufSize)

	for {
		n, err := mono.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, targetRate, fmt.Errorf("%w", err)
		}
	}

	return out, targetRate, nil
}

// RenderMono16 is RenderMono followed by conversion to 16-bit PCM.
func RenderMono16(src audio.Source, targetRate, bufSize int) ([]int16, int, error) {
	mono, rate, err := RenderMono(src, targetRate, bufSize)
	if err != nil {
		return nil, rate, err
	}

	pcm16 := make([]int16, len(mono))
	for i, x := range mono {
		pcm16[i] = utils.Float32ToInt16(x)
	}

	return pcm16, rate, nil
}
