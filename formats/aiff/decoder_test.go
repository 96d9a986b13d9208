// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/rrlite/audio"
)

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not AIFF data"),
		"empty":   {},
		"wav":     []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: Decode() error = nil, want error", name)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.aif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	in := []float32{0, 0.5, -0.5, 0.25, -0.25, 0}
	if err := WriteFloat32(f, 22050, in); err != nil {
		t.Fatalf("WriteFloat32() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// a plain io.Reader exercises the buffering path
	src, err := (Decoder{}).Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 22050 || src.Channels() != 1 {
		t.Fatalf("format = %d Hz x %d, want 22050 Hz x 1", src.SampleRate(), src.Channels())
	}

	if got := audio.Frames(src); got != int64(len(in)) {
		t.Errorf("Frames() = %d, want %d", got, len(in))
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	const tol = 1.0 / 16384
	for i, want := range in {
		if d := buf.Data[0][i] - want; d > tol || d < -tol {
			t.Errorf("sample %d = %v, want %v", i, buf.Data[0][i], want)
		}
	}
}
