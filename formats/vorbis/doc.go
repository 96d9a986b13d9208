// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes natively to float32, so samples pass through without
// conversion. Any channel count the stream declares is preserved; the
// sampler downmixes afterwards.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // not an Ogg Vorbis stream
//	}
//	frames := audio.Frames(src) // -1 unless file is seekable
package vorbis
