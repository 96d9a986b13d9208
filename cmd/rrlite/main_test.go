// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats/aiff"
	"github.com/ik5/rrlite/formats/wav"
	"github.com/ik5/rrlite/internal/player"
	"github.com/ik5/rrlite/sampler"
)

// writeInstrument lays out a config with two loadable slots and one
// missing file.
func writeInstrument(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"kick.wav", "snare.wav"} {
		var buf bytes.Buffer
		if err := wav.WriteFloat32(&buf, 8000, []float32{0.5, 0.25, 0, -0.25}); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	const data = `
[[slot]]
key_pair = 7
file = "kick.wav"
name = "Kick"

[[slot]]
key_pair = 3
file = "snare.wav"

[[slot]]
key_pair = 9
file = "gone.wav"
`
	path := filepath.Join(dir, "inst.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"dance"}} {
		if err := run(context.Background(), args, &bytes.Buffer{}, zerolog.Nop()); !errors.Is(err, errUsage) {
			t.Errorf("run(%v) error = %v, want usage error", args, err)
		}
	}
}

func TestRun_Formats(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(context.Background(), []string{"formats"}, &out, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	if got := strings.TrimSpace(out.String()); got != "aif aiff mp3 oga ogg wav wave" {
		t.Errorf("formats = %q", got)
	}
}

func TestRun_Inspect(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(context.Background(), []string{"inspect", "-config", writeInstrument(t)}, &out, zerolog.Nop()); err != nil {
		t.Fatalf("inspect error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 11 {
		t.Fatalf("inspect printed %d lines, want header + 10:\n%s", len(lines), out.String())
	}

	if !strings.Contains(lines[8], "Kick") || !strings.Contains(lines[8], "8000") {
		t.Errorf("slot 7 line = %q", lines[8])
	}
	if !strings.Contains(lines[4], "snare") {
		t.Errorf("slot 3 line = %q", lines[4])
	}
	if strings.Contains(lines[10], "gone") {
		t.Errorf("slot 9 line = %q, want empty slot", lines[10])
	}
}

func TestRun_InspectNeedsConfig(t *testing.T) {
	t.Parallel()

	if err := run(context.Background(), []string{"inspect"}, &bytes.Buffer{}, zerolog.Nop()); err == nil {
		t.Error("inspect without -config succeeded")
	}
}

func TestRun_Export(t *testing.T) {
	t.Parallel()

	cfg := writeInstrument(t)
	out := filepath.Join(t.TempDir(), "kick.aiff")

	if err := run(context.Background(), []string{"export", "-config", cfg, "-slot", "7", "-o", out}, nil, zerolog.Nop()); err != nil {
		t.Fatalf("export error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := (aiff.Decoder{}).Decode(f)
	if err != nil {
		t.Fatalf("decoding export: %v", err)
	}

	if audio.Frames(src) != 4 || src.SampleRate() != 8000 {
		t.Errorf("export = %d frames at %d Hz, want 4 at 8000", audio.Frames(src), src.SampleRate())
	}

	err = run(context.Background(), []string{"export", "-config", cfg, "-slot", "9", "-o", out}, nil, zerolog.Nop())
	if err == nil {
		t.Error("exporting an empty slot succeeded")
	}
}

func TestRun_Convert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "stereo.wav")
	out := filepath.Join(dir, "mono.wav")

	var buf bytes.Buffer
	if err := wav.Encode(&buf, 16000, 2, make([]int16, 2*1600)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(in, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), []string{"convert", "-rate", "8000", in, out}, nil, zerolog.Nop()); err != nil {
		t.Fatalf("convert error = %v", err)
	}

	s := sampler.NewSound()
	if err := s.LoadFile(out, nil); err != nil {
		t.Fatal(err)
	}

	if s.OriginalSampleRate() != 8000 || s.Len() < 795 || s.Len() > 805 {
		t.Errorf("converted = %d frames at %v Hz, want about 800 at 8000", s.Len(), s.OriginalSampleRate())
	}

	if err := run(context.Background(), []string{"convert", in}, nil, zerolog.Nop()); err == nil {
		t.Error("convert with one file succeeded")
	}
}

func TestPlayNote(t *testing.T) {
	t.Parallel()

	inst, _, err := loadInstrument(writeInstrument(t), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	p := player.NewStubPlayer(zerolog.Nop())

	// 48 belongs to both pair 3 and pair 7
	if err := playNote(inst, p, 48, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if err := playNote(inst, p, 37, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(p.Played, ","); got != "snare,Kick" {
		t.Errorf("played %q, want snare,Kick", got)
	}
}

func TestReload(t *testing.T) {
	t.Parallel()

	path := writeInstrument(t)
	inst, cfg, err := loadInstrument(path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	kick := filepath.Join(filepath.Dir(path), "kick.wav")
	var buf bytes.Buffer
	if err := wav.WriteFloat32(&buf, 22050, make([]float32, 10)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(kick, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	abs, err := filepath.Abs(kick)
	if err != nil {
		t.Fatal(err)
	}
	reload(inst, cfg, abs, zerolog.Nop())

	s, ok := inst.Slot(7)
	if !ok || s.Len() != 10 || s.OriginalSampleRate() != 22050 || s.DisplayName() != "Kick" {
		t.Errorf("slot 7 after reload = %v", s)
	}
}
