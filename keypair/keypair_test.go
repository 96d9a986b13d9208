// SPDX-License-Identifier: EPL-2.0

package keypair

import (
	"strings"
	"testing"
)

func TestLookup_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		idx    int
		note1  int
		note2  int
		offset int
	}{
		{0, 36, 38, -7},
		{1, 40, 41, -6},
		{2, 43, 45, -5},
		{3, 47, 48, -4},
		{4, 52, 53, -3},
		{5, 55, 57, -2},
		{6, 59, 60, -1},
		{7, 48, 50, 0},
		{8, 64, 65, 1},
		{9, 67, 69, 2},
	}

	if len(tests) != Count {
		t.Fatalf("table test has %d rows, want %d", len(tests), Count)
	}

	for _, tt := range tests {
		p, ok := Lookup(tt.idx)
		if !ok {
			t.Errorf("Lookup(%d) ok = false, want true", tt.idx)
			continue
		}

		if p.Index != tt.idx || p.Note1 != tt.note1 || p.Note2 != tt.note2 || p.Offset != tt.offset {
			t.Errorf("Lookup(%d) = %+v, want {%d %d %d %d}",
				tt.idx, p, tt.idx, tt.note1, tt.note2, tt.offset)
		}

		if p.Note1 == p.Note2 {
			t.Errorf("Lookup(%d) notes are equal: %d", tt.idx, p.Note1)
		}
	}
}

func TestLookup_OutOfRange(t *testing.T) {
	t.Parallel()

	for _, idx := range []int{-1, -100, 10, 11, 999} {
		p, ok := Lookup(idx)
		if ok {
			t.Errorf("Lookup(%d) ok = true, want false", idx)
		}

		if p.Note1 != -1 || p.Note2 != -1 {
			t.Errorf("Lookup(%d) notes = (%d, %d), want (-1, -1)", idx, p.Note1, p.Note2)
		}

		if p.Index != Unassigned {
			t.Errorf("Lookup(%d) Index = %d, want %d", idx, p.Index, Unassigned)
		}
	}
}

func TestRootPair(t *testing.T) {
	t.Parallel()

	p, _ := Lookup(RootPair)
	if p.Offset != 0 {
		t.Errorf("root pair offset = %d, want 0", p.Offset)
	}

	root, ok := RootFor(RootPair)
	if !ok || root != RootNote {
		t.Errorf("RootFor(%d) = %d, %v, want %d, true", RootPair, root, ok, RootNote)
	}
}

func TestRootFor(t *testing.T) {
	t.Parallel()

	for idx := range Count {
		p, _ := Lookup(idx)

		got, ok := RootFor(idx)
		if !ok {
			t.Fatalf("RootFor(%d) ok = false", idx)
		}

		if got != 48+p.Offset {
			t.Errorf("RootFor(%d) = %d, want %d", idx, got, 48+p.Offset)
		}

		if p.Root() != got {
			t.Errorf("Pair.Root() = %d, RootFor = %d", p.Root(), got)
		}
	}

	if _, ok := RootFor(10); ok {
		t.Error("RootFor(10) ok = true, want false")
	}
}

func TestForNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		note int
		want []int
	}{
		{36, []int{0}},
		{37, nil},
		{48, []int{3, 7}},
		{50, []int{7}},
		{69, []int{9}},
		{127, nil},
		{-1, nil},
	}

	for _, tt := range tests {
		got := ForNote(tt.note)
		if len(got) != len(tt.want) {
			t.Errorf("ForNote(%d) = %v, want %v", tt.note, got, tt.want)
			continue
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ForNote(%d) = %v, want %v", tt.note, got, tt.want)
				break
			}
		}
	}
}

func TestAll_IsCopy(t *testing.T) {
	t.Parallel()

	all := All()
	all[0].Note1 = 0

	p, _ := Lookup(0)
	if p.Note1 != 36 {
		t.Errorf("mutating All() changed the table: Note1 = %d", p.Note1)
	}
}

func TestPair_String(t *testing.T) {
	t.Parallel()

	p, _ := Lookup(0)
	s := p.String()
	if !strings.HasSuffix(s, "-7") || !strings.Contains(s, "/") {
		t.Errorf("Pair.String() = %q, want \"<note>/<note> -7\"", s)
	}

	if got := invalid.String(); got != "unassigned" {
		t.Errorf("invalid.String() = %q, want \"unassigned\"", got)
	}
}
