// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM plumbing shared by the decoders and the
// sampler.
//
// # Sources and decoders
//
// A Source is a decoded stream of interleaved float32 samples in [-1, 1].
// Sources that know their length up front also implement FrameCounter.
// A Decoder turns an io.Reader into a Source, and a Registry maps format
// keys (file extensions) to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.ForPath("kick.wav")
//
// # Ingestion
//
// ReadAll drains a Source into a planar Buffer (Data[channel][frame]).
// Buffer.Mono and Downmix reduce it to one channel with an equal-gain
// average, so a stereo file is neither louder nor quieter than the same
// material recorded mono:
//
//	buf, err := audio.ReadAll(src)
//	mono := buf.Mono()
//
// # Streaming
//
// MonoMixer performs the same average while streaming, and Resampler
// changes the sample rate with cubic interpolation. Both are Sources and
// can be chained:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 22050))
//
// MemorySource replays samples already held in memory, which lets a
// loaded sample go back through the streaming stages.
//
// # Errors
//
// ReadSamples returns io.EOF once the stream is finished. ReadAll reports
// ErrInvalidChannels, ErrInvalidSampleRate and ErrTruncatedSource for
// sources that cannot produce a usable buffer. An empty stream yields an
// empty buffer.
package audio
