package schedule

import (
	"reflect"
	"testing"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 0, 60, 120, 180, false},
		{"touching edges", 0, 60, 60, 120, false},
		{"partial", 0, 90, 60, 120, true},
		{"contained", 0, 120, 30, 60, true},
		{"identical", 30, 60, 30, 60, true},
		{"reversed touching", 60, 120, 0, 60, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%d,%d,%d,%d) = %t, want %t", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestConflictingBlockIDsAdjacentPairs(t *testing.T) {
	blocks := []Block{
		{ID: "a", MixerID: "M1", Start: 0, End: 60},
		{ID: "b", MixerID: "M1", Start: 30, End: 90},
		{ID: "c", MixerID: "M1", Start: 120, End: 180},
		{ID: "d", MixerID: "M2", Start: 0, End: 60},
	}
	got := ConflictingBlockIDs(blocks)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ConflictingBlockIDs = %v, want %v", got, want)
	}
}

// A block that spans two later blocks is only compared with its sorted
// neighbor, so the third block stays unflagged.
func TestConflictingBlockIDsChecksNeighborsOnly(t *testing.T) {
	blocks := []Block{
		{ID: "wide", MixerID: "M3", Start: 0, End: 200},
		{ID: "mid", MixerID: "M3", Start: 10, End: 50},
		{ID: "late", MixerID: "M3", Start: 60, End: 100},
	}
	got := ConflictingBlockIDs(blocks)
	want := []string{"wide", "mid"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ConflictingBlockIDs = %v, want %v", got, want)
	}
}

func TestConflictingBlockIDsIgnoresUnassigned(t *testing.T) {
	blocks := []Block{
		{ID: "a", Start: 0, End: 60},
		{ID: "b", Start: 30, End: 90},
	}
	if got := ConflictingBlockIDs(blocks); len(got) != 0 {
		t.Fatalf("expected no conflicts for blocks without a mixer, got %v", got)
	}
}
