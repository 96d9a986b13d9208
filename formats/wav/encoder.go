// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/rrlite/utils"
)

// header is the canonical 44-byte RIFF/WAVE header for PCM data.
type header struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

const headerSize = 44

func newHeader(sampleRate, channels, samples int) header {
	const bytesPerSample = 2
	dataSize := uint32(samples * bytesPerSample)

	return header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      headerSize - 8 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   formatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * bytesPerSample),
		BlockAlign:    uint16(channels * bytesPerSample),
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// Encode writes interleaved 16-bit PCM as a WAV stream. len(samples)
// must be a multiple of channels.
func Encode(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrInvalidChannels
	}

	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrUnsupportedWavLayout, len(samples), channels)
	}

	if err := binary.Write(w, binary.LittleEndian, newHeader(sampleRate, channels, len(samples))); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	const chunk = 4096
	buf := make([]byte, 2*min(chunk, len(samples)))
	for start := 0; start < len(samples); start += chunk {
		part := samples[start:min(start+chunk, len(samples))]
		out := buf[:2*len(part)]
		for i, s := range part {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

// WriteWAV16 writes mono 16-bit PCM at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return Encode(w, sampleRate, 1, samples)
}

// WriteFloat32 converts mono float samples to 16-bit PCM and writes them.
func WriteFloat32(w io.Writer, sampleRate int, samples []float32) error {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = utils.Float32ToInt16(s)
	}

	return WriteWAV16(w, sampleRate, pcm)
}
