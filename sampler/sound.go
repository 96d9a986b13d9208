// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"time"

	"github.com/ik5/rrlite/keypair"
)

// DefaultSampleRate is reported by a sound that has not been loaded yet.
const DefaultSampleRate = 44100.0

// Sound is one sample of the instrument: a mono buffer plus what the
// voice engine needs to play it at the right pitch.
//
// A Sound has a single writer. Configure and load it, then hand it to the
// playback side, which only reads.
type Sound struct {
	buffer     []float32
	sampleRate float64
	rootNote   int
	keyPair    int
	name       string
}

// NewSound returns an empty, unassigned sound.
func NewSound() *Sound {
	return &Sound{
		sampleRate: DefaultSampleRate,
		rootNote:   keypair.RootNote,
		keyPair:    keypair.Unassigned,
	}
}

// SetKeyPairIndex binds the sound to key pair idx and derives its root
// note. An out of range idx leaves the sound unassigned, keeps the root
// note it had and returns ErrInvalidKeyPair.
func (s *Sound) SetKeyPairIndex(idx int) error {
	root, ok := keypair.RootFor(idx)
	if !ok {
		s.keyPair = keypair.Unassigned
		return fmt.Errorf("%w: %d", ErrInvalidKeyPair, idx)
	}

	s.keyPair = idx
	s.rootNote = root

	return nil
}

// AppliesToNote reports whether note triggers this sound.
func (s *Sound) AppliesToNote(note int) bool {
	if !keypair.Valid(s.keyPair) {
		return false
	}

	// an invalid pair has notes -1/-1 and never matches
	p, _ := keypair.Lookup(s.keyPair)

	return p.Contains(note)
}

// AppliesToChannel reports whether the sound answers on MIDI channel ch.
// Every channel is accepted.
func (s *Sound) AppliesToChannel(int) bool { return true }

// Buffer returns the mono samples. The slice is shared; callers must not
// modify it.
func (s *Sound) Buffer() []float32 { return s.buffer }

// OriginalSampleRate is the rate of the file the buffer was decoded from.
func (s *Sound) OriginalSampleRate() float64 { return s.sampleRate }

// RootNote is the MIDI note the sample plays back unpitched at.
func (s *Sound) RootNote() int { return s.rootNote }

// KeyPairIndex is the assigned table index, or keypair.Unassigned.
func (s *Sound) KeyPairIndex() int { return s.keyPair }

// KeyPair returns the table row the sound is bound to.
func (s *Sound) KeyPair() (keypair.Pair, bool) { return keypair.Lookup(s.keyPair) }

// DisplayName is the label shown for the sound, by default the file's
// base name without extension.
func (s *Sound) DisplayName() string { return s.name }

// SetDisplayName overrides the name taken from the file. The next
// successful load replaces it again.
func (s *Sound) SetDisplayName(name string) { s.name = name }

// IsLoaded reports whether the sound holds any audio.
func (s *Sound) IsLoaded() bool { return len(s.buffer) > 0 }

// Len is the number of frames in the buffer.
func (s *Sound) Len() int { return len(s.buffer) }

// Duration is the playing time at the original sample rate.
func (s *Sound) Duration() time.Duration {
	if s.sampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.buffer)) / s.sampleRate * float64(time.Second))
}

func (s *Sound) String() string {
	name := s.name
	if name == "" {
		name = "(empty)"
	}

	p, _ := keypair.Lookup(s.keyPair)

	return fmt.Sprintf("%s [%s] root %d", name, p, s.rootNote)
}
