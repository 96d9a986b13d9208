// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding is done by github.com/go-audio/wav and supports integer PCM at
// 8, 16, 24 and 32 bits, any channel count and any sample rate. The
// returned audio.Source also reports its length in frames:
//
//	src, err := wav.Decoder{}.Decode(file)
//	frames := audio.Frames(src)
//
// Encoding writes 16-bit PCM with a canonical 44-byte header:
//
//	err := wav.WriteWAV16(out, 44100, samples)
//
// Decode errors wrap ErrNotWavFile, ErrUnsupportedWavLayout,
// ErrUnsupportedBitDepth or ErrUnsupportedWavChunks.
package wav
