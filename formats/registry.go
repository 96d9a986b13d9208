// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/aiff"
	"github.com/ik5/rrlite/formats/mp3"
	"github.com/ik5/rrlite/formats/vorbis"
	"github.com/ik5/rrlite/formats/wav"
)

// DefaultRegistry returns a registry keyed by the usual file extensions
// for WAV, MP3, Ogg Vorbis and AIFF.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}
