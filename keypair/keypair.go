// SPDX-License-Identifier: EPL-2.0

// Package keypair holds the fixed mapping between the instrument's ten
// key pairs and the MIDI notes that trigger them.
//
// Each pair binds two white keys to one sample and shifts that sample by a
// number of semitones relative to the instrument root (C, MIDI note 48).
// Pair 7 is the root pair and plays its sample unshifted.
package keypair

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	// Count is the number of key pairs on the instrument.
	Count = 10
	// RootNote is the MIDI note a sample plays at with no pitch shift.
	RootNote = 48
	// RootPair is the pair with a zero semitone offset.
	RootPair = 7
	// Unassigned marks a sound that is not bound to any key pair.
	Unassigned = -1
)

// Pair is one row of the key pair table.
type Pair struct {
	Index  int
	Note1  int
	Note2  int
	Offset int // semitones from RootNote
}

// invalid is returned for any index outside [0, Count).
var invalid = Pair{Index: Unassigned, Note1: -1, Note2: -1}

var table = [Count]Pair{
	{Index: 0, Note1: 36, Note2: 38, Offset: -7},
	{Index: 1, Note1: 40, Note2: 41, Offset: -6},
	{Index: 2, Note1: 43, Note2: 45, Offset: -5},
	{Index: 3, Note1: 47, Note2: 48, Offset: -4},
	{Index: 4, Note1: 52, Note2: 53, Offset: -3},
	{Index: 5, Note1: 55, Note2: 57, Offset: -2},
	{Index: 6, Note1: 59, Note2: 60, Offset: -1},
	{Index: 7, Note1: 48, Note2: 50, Offset: 0},
	{Index: 8, Note1: 64, Note2: 65, Offset: +1},
	{Index: 9, Note1: 67, Note2: 69, Offset: +2},
}

// Valid reports whether idx names a key pair.
func Valid(idx int) bool {
	return idx >= 0 && idx < Count
}

// Lookup returns the pair stored at idx. For an out of range index it
// returns a pair whose notes are both -1 and ok == false.
func Lookup(idx int) (Pair, bool) {
	if !Valid(idx) {
		return invalid, false
	}

	return table[idx], true
}

// RootFor returns the root note a sample assigned to idx plays at.
func RootFor(idx int) (int, bool) {
	p, ok := Lookup(idx)
	if !ok {
		return 0, false
	}

	return RootNote + p.Offset, true
}

// All returns a copy of the whole table.
func All() [Count]Pair {
	return table
}

// ForNote returns the indexes of every pair that note triggers, in table
// order. Pairs may share a note (48 belongs to both 3 and 7).
func ForNote(note int) []int {
	var out []int
	for _, p := range table {
		if p.Contains(note) {
			out = append(out, p.Index)
		}
	}

	return out
}

// Contains reports whether note is one of the pair's two trigger notes.
func (p Pair) Contains(note int) bool {
	return note == p.Note1 || note == p.Note2
}

// Root is the MIDI note the pair's sample plays unshifted at.
func (p Pair) Root() int {
	return RootNote + p.Offset
}

func (p Pair) String() string {
	if !Valid(p.Index) {
		return "unassigned"
	}

	return fmt.Sprintf("%s/%s %+d", noteName(p.Note1), noteName(p.Note2), p.Offset)
}

func noteName(n int) string {
	if n < 0 || n > 127 {
		return "?"
	}

	return midi.Note(uint8(n)).String()
}
