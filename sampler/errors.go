// SPDX-License-Identifier: EPL-2.0

package sampler

import "errors"

var (
	// ErrInvalidKeyPair is returned when a key pair index is outside [0,9].
	// The assignment is reset to unassigned; nothing else changes.
	ErrInvalidKeyPair = errors.New("invalid key pair index")
	// ErrNoReader is returned when no decoder could be obtained for a file.
	ErrNoReader = errors.New("no audio reader for file")
	// ErrSlotRange is returned for a slot index outside the instrument.
	ErrSlotRange = errors.New("slot index out of range")
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrNoAudio is returned when a slot's file decodes to zero frames.
	ErrNoAudio = errors.New("sample contains no audio")
	// ErrNilConfig is returned by Instrument.Apply when given no config.
	ErrNilConfig = errors.New("nil config")
)
