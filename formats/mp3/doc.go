// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields stereo float32 samples in [-1, 1). A mono
// file comes out with both channels equal, so downmixing it returns the
// original signal. When the input is an io.ReadSeeker (an *os.File, a
// *bytes.Reader) the source also reports its length in frames.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
package mp3
