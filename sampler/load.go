// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/formats"
)

// Load decodes r with dec and replaces the sound's audio with a mono mix
// of it. name is the file the data came from; its base name without
// extension becomes the display name.
//
// The sound is only modified when the whole stream decoded; on error it
// is left exactly as it was. A stream with no frames loads as an empty
// buffer and IsLoaded reports false.
func (s *Sound) Load(name string, r io.Reader, dec audio.Decoder) error {
	if dec == nil {
		return fmt.Errorf("%w: %s", ErrNoReader, name)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNoReader, name, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}

	s.buffer = buf.Mono()
	s.sampleRate = float64(buf.SampleRate)
	s.name = baseName(name)

	return nil
}

// LoadFile opens path and loads it with the decoder reg holds for its
// extension. A nil reg uses formats.DefaultRegistry.
func (s *Sound) LoadFile(path string, reg *audio.Registry) error {
	if reg == nil {
		reg = formats.DefaultRegistry()
	}

	dec, ok := reg.ForPath(path)
	if !ok {
		return fmt.Errorf("%w: %s: unknown format", ErrNoReader, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoReader, err)
	}
	defer f.Close()

	return s.Load(path, f, dec)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
