// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"slices"
	"testing"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/wav"
)

func TestDefaultRegistry_Formats(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := DefaultRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestDefaultRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		path string
		ok   bool
	}{
		{"kick.wav", true},
		{"/samples/SNARE.WAV", true},
		{"pad.ogg", true},
		{"lead.mp3", true},
		{"bell.aiff", true},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if _, ok := reg.ForPath(tt.path); ok != tt.ok {
			t.Errorf("ForPath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
		}
	}
}

func TestDefaultRegistry_DecodesWAV(t *testing.T) {
	t.Parallel()

	var file bytes.Buffer
	if err := wav.WriteFloat32(&file, 8000, []float32{0, 0.5, -0.5}); err != nil {
		t.Fatal(err)
	}

	dec, ok := DefaultRegistry().ForPath("x.wave")
	if !ok {
		t.Fatal("no decoder for .wave")
	}

	src, err := dec.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Frames() != 3 || buf.SampleRate != 8000 {
		t.Errorf("buffer = %d frames at %d Hz, want 3 at 8000", buf.Frames(), buf.SampleRate)
	}
}
