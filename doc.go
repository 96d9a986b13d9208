// SPDX-License-Identifier: EPL-2.0

// Package rrlite is a small round robin sampler core: ten key pairs, one
// mono sample per pair, and the plumbing to get audio files into it.
//
// The work is split across subpackages:
//
//   - keypair: the fixed table of trigger notes and pitch offsets
//   - audio: sources, decoders, ingestion, downmix and resampling
//   - formats: WAV, MP3, Ogg Vorbis and AIFF decoders
//   - sampler: Sound and Instrument, what the voice engine reads
//   - config: TOML instrument descriptions
//
// This package adds render and export helpers on top of them:
//
//	s := sampler.NewSound()
//	if err := s.LoadFile("kick.ogg", nil); err != nil {
//	    return err
//	}
//
//	out, _ := os.Create("kick.wav")
//	defer out.Close()
//	err := rrlite.WriteSoundWAV(out, s, 22050)
//
// RenderMono16 does the same for any audio.Source: resample with cubic
// interpolation, mix to mono and convert to 16-bit PCM.
package rrlite
