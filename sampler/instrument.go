// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/rrlite/audio"
	"github.com/ik5/rrlite/config"
	"github.com/ik5/rrlite/formats"
	"github.com/ik5/rrlite/keypair"
)

// Instrument holds one sound per key pair. Slot i is bound to key pair i.
//
// Like Sound, an Instrument is built by one goroutine and read by the
// playback side afterwards. A slot only ever holds a fully loaded sound.
type Instrument struct {
	slots [keypair.Count]*Sound
	log   zerolog.Logger
}

// Option configures an Instrument.
type Option func(*Instrument)

// WithLogger sets the logger load results are reported to.
func WithLogger(log zerolog.Logger) Option {
	return func(i *Instrument) { i.log = log }
}

func NewInstrument(opts ...Option) *Instrument {
	i := &Instrument{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}

	return i
}

func checkSlot(idx int) error {
	if !keypair.Valid(idx) {
		return fmt.Errorf("%w: %d", ErrSlotRange, idx)
	}

	return nil
}

// LoadSlot loads path into slot idx. The slot keeps its previous sound
// unless the load succeeds.
func (i *Instrument) LoadSlot(idx int, path string, reg *audio.Registry) error {
	return i.load(idx, path, func(s *Sound) error {
		return s.LoadFile(path, reg)
	})
}

// LoadSlotFrom is LoadSlot for data that is not on disk.
func (i *Instrument) LoadSlotFrom(idx int, name string, r io.Reader, dec audio.Decoder) error {
	return i.load(idx, name, func(s *Sound) error {
		return s.Load(name, r, dec)
	})
}

func (i *Instrument) load(idx int, name string, fill func(*Sound) error) error {
	s, err := i.build(idx, name, fill)
	if err != nil {
		return err
	}

	i.publish(idx, s)

	return nil
}

// build loads a fresh sound for slot idx without touching the instrument.
func (i *Instrument) build(idx int, name string, fill func(*Sound) error) (*Sound, error) {
	if err := checkSlot(idx); err != nil {
		return nil, err
	}

	s := NewSound()
	if err := s.SetKeyPairIndex(idx); err != nil {
		return nil, err
	}

	err := fill(s)
	if err == nil && !s.IsLoaded() {
		err = fmt.Errorf("%w: %s", ErrNoAudio, name)
	}

	if err != nil {
		i.log.Warn().Err(err).Int("slot", idx).Str("file", name).Msg("Failed to load sample")
		return nil, err
	}

	return s, nil
}

func (i *Instrument) publish(idx int, s *Sound) {
	i.slots[idx] = s

	i.log.Info().
		Int("slot", idx).
		Str("name", s.DisplayName()).
		Int("frames", s.Len()).
		Float64("rate", s.OriginalSampleRate()).
		Msg("Sample loaded")
}

// Slot returns the sound in slot idx, if any.
func (i *Instrument) Slot(idx int) (*Sound, bool) {
	if !keypair.Valid(idx) || i.slots[idx] == nil {
		return nil, false
	}

	return i.slots[idx], true
}

// Clear empties slot idx. Out of range indexes are ignored.
func (i *Instrument) Clear(idx int) {
	if keypair.Valid(idx) {
		i.slots[idx] = nil
	}
}

// SetDisplayName renames the sound in slot idx.
func (i *Instrument) SetDisplayName(idx int, name string) error {
	if err := checkSlot(idx); err != nil {
		return err
	}

	s := i.slots[idx]
	if s == nil {
		return fmt.Errorf("%w: %d", ErrSlotEmpty, idx)
	}
	s.SetDisplayName(name)

	return nil
}

// Loaded counts the occupied slots.
func (i *Instrument) Loaded() int {
	n := 0
	for _, s := range i.slots {
		if s != nil {
			n++
		}
	}

	return n
}

// Apply loads every slot cfg describes. Files are decoded in parallel
// and published once all of them have finished. A slot that fails is
// skipped and keeps its previous contents; the returned error joins
// every failure.
func (i *Instrument) Apply(cfg *config.Config, reg *audio.Registry) error {
	if cfg == nil {
		return ErrNilConfig
	}

	if reg == nil {
		reg = formats.DefaultRegistry()
	}

	sounds := make([]*Sound, len(cfg.Slots))
	errs := make([]error, len(cfg.Slots))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for n, slot := range cfg.Slots {
		g.Go(func() error {
			s, err := i.build(slot.KeyPair, slot.Path, func(s *Sound) error {
				return s.LoadFile(slot.Path, reg)
			})
			if err != nil {
				errs[n] = fmt.Errorf("slot %d: %w", slot.KeyPair, err)
				return nil
			}

			if slot.Name != "" {
				s.SetDisplayName(slot.Name)
			}
			sounds[n] = s

			return nil
		})
	}
	_ = g.Wait()

	for n, s := range sounds {
		if s != nil {
			i.publish(cfg.Slots[n].KeyPair, s)
		}
	}

	return errors.Join(errs...)
}

// SoundsFor returns the sounds that note on channel should trigger, in
// slot order.
func (i *Instrument) SoundsFor(note, channel int) []*Sound {
	var out []*Sound
	for _, s := range i.slots {
		if s != nil && s.AppliesToNote(note) && s.AppliesToChannel(channel) {
			out = append(out, s)
		}
	}

	return out
}

// Match returns the sounds a MIDI message triggers. Only note-on messages
// with a non-zero velocity trigger anything. Channels are numbered 1-16.
func (i *Instrument) Match(msg midi.Message) []*Sound {
	var ch, key, vel uint8
	if !msg.GetNoteStart(&ch, &key, &vel) {
		return nil
	}

	return i.SoundsFor(int(key), int(ch)+1)
}
