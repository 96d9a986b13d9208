// SPDX-License-Identifier: EPL-2.0

// Package sampler models the samples of a ten-slot round robin instrument.
//
// A Sound owns one mono buffer decoded from an audio file together with
// the sample rate of that file and the key pair it is bound to. The key
// pair decides which two MIDI notes trigger the sound and the root note
// it must be pitched from:
//
//	s := sampler.NewSound()
//	if err := s.SetKeyPairIndex(0); err != nil {
//	    // not a key pair; s is now unassigned
//	}
//	if err := s.LoadFile("kick.wav", nil); err != nil {
//	    // s is unchanged
//	}
//	s.AppliesToNote(36) // true
//	s.RootNote()        // 41
//
// Multi-channel files are mixed down with equal gain per channel.
//
// An Instrument groups ten sounds, one per key pair, and answers note-on
// messages with the sounds they trigger. It can be populated from a
// config.Config.
//
// Neither type locks. Load on one goroutine, then publish to the
// playback side.
package sampler
