// SPDX-License-Identifier: EPL-2.0

package rrlite

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/aiff"
	"github.com/ik5/rrlite/formats/wav"
	"github.com/ik5/rrlite/internal/audiotest"
	"github.com/ik5/rrlite/sampler"
)

type sourceDecoder struct{ src audio.Source }

func (d sourceDecoder) Decode(_ io.Reader) (audio.Source, error) { return d.src, nil }

func loadedSound(t *testing.T, rate int, samples ...float32) *sampler.Sound {
	t.Helper()

	s := sampler.NewSound()
	src := audiotest.NewPlanarSource(rate, [][]float32{samples})
	if err := s.Load("test.wav", nil, sourceDecoder{src}); err != nil {
		t.Fatal(err)
	}

	return s
}

func TestExportMono16_NotLoaded(t *testing.T) {
	t.Parallel()

	if _, _, err := ExportMono16(sampler.NewSound(), 8000, 0); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("ExportMono16() error = %v, want ErrNotLoaded", err)
	}

	if _, _, err := ExportMono16(nil, 8000, 0); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("ExportMono16(nil) error = %v, want ErrNotLoaded", err)
	}

	if err := WriteSoundWAV(&bytes.Buffer{}, sampler.NewSound(), 8000); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("WriteSoundWAV() error = %v, want ErrNotLoaded", err)
	}
}

func TestExportMono16_OriginalRate(t *testing.T) {
	t.Parallel()

	s := loadedSound(t, 11025, 0.5, -0.5, 0)

	pcm, rate, err := ExportMono16(s, 0, 0)
	if err != nil {
		t.Fatalf("ExportMono16() error = %v", err)
	}

	if rate != 11025 {
		t.Errorf("rate = %d, want 11025", rate)
	}

	want := []int16{16383, -16383, 0}
	if len(pcm) != len(want) {
		t.Fatalf("len = %d, want %d", len(pcm), len(want))
	}

	for i := range want {
		if pcm[i] != want[i] {
			t.Errorf("pcm[%d] = %d, want %d", i, pcm[i], want[i])
		}
	}

	// the sound's own buffer is untouched
	if s.Buffer()[0] != 0.5 {
		t.Error("export modified the sound buffer")
	}
}

func TestWriteSoundWAV(t *testing.T) {
	t.Parallel()

	s := loadedSound(t, 16000, make([]float32, 1600)...)

	var out bytes.Buffer
	if err := WriteSoundWAV(&out, s, 8000); err != nil {
		t.Fatalf("WriteSoundWAV() error = %v", err)
	}

	src, err := (wav.Decoder{}).Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("decoding export: %v", err)
	}

	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Errorf("export format = %d Hz x %d, want 8000 Hz x 1", src.SampleRate(), src.Channels())
	}

	if n := audio.Frames(src); n < 795 || n > 805 {
		t.Errorf("export frames = %d, want about 800", n)
	}
}

func TestWriteSoundAIFF(t *testing.T) {
	t.Parallel()

	s := loadedSound(t, 8000, 0.5, 0.5, 0.5, 0.5)

	path := filepath.Join(t.TempDir(), "out.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := WriteSoundAIFF(f, s, 0); err != nil {
		t.Fatalf("WriteSoundAIFF() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	src, err := (aiff.Decoder{}).Decode(in)
	if err != nil {
		t.Fatalf("decoding export: %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatal(err)
	}

	if buf.SampleRate != 8000 || buf.Frames() != 4 {
		t.Errorf("export = %d frames at %d Hz, want 4 at 8000", buf.Frames(), buf.SampleRate)
	}
}

func TestExportMono_Resamples(t *testing.T) {
	t.Parallel()

	s := loadedSound(t, 24000, make([]float32, 240)...)

	out, rate, err := ExportMono(s, 48000, 64)
	if err != nil {
		t.Fatalf("ExportMono() error = %v", err)
	}

	if rate != 48000 {
		t.Errorf("rate = %d, want 48000", rate)
	}

	if len(out) < 470 || len(out) > 490 {
		t.Errorf("len = %d, want about 480", len(out))
	}
}
