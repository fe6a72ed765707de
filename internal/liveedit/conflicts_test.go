package liveedit

import (
	"testing"

	"bottling-backend/internal/schedule"
)

func TestCalculateConflictsReportsOverlapWindow(t *testing.T) {
	lines := []Line{{
		LineID: "L1",
		Positions: []Position{
			{Position: 1, OrderID: "a", MixerID: "M1", StartAt: "08:00", EndAt: "09:00", DurationMin: 60},
			{Position: 2, OrderID: "b", MixerID: "M1", StartAt: "08:30", EndAt: "09:30", DurationMin: 60},
		},
	}}

	conflicts := calculateConflicts(lines, nil)
	if len(conflicts) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.MixerID != "M1" {
		t.Fatalf("MixerID = %s", c.MixerID)
	}
	if c.BlockAID != "order-a" || c.BlockBID != "order-b" {
		t.Fatalf("blocks = %s/%s", c.BlockAID, c.BlockBID)
	}
	if c.OverlapStart != "08:30" || c.OverlapEnd != "09:00" {
		t.Fatalf("overlap = %s-%s, want 08:30-09:00", c.OverlapStart, c.OverlapEnd)
	}
}

func TestCalculateConflictsAgainstReservations(t *testing.T) {
	lines := []Line{{
		LineID: "L1",
		Positions: []Position{
			{Position: 1, OrderID: "a", MixerID: "M2", StartAt: "10:00", EndAt: "11:00", DurationMin: 60},
		},
	}}
	reservations := []schedule.MixerBlock{
		{ID: "blk-x", MixerID: "M2", OrderID: "x", Start: 630, End: 690, Kind: schedule.KindManufacturing},
	}

	conflicts := calculateConflicts(lines, reservations)
	if len(conflicts) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.BlockAID != "order-a" || c.BlockBID != "blk-x" {
		t.Fatalf("blocks = %s/%s", c.BlockAID, c.BlockBID)
	}
	if c.OverlapStart != "10:30" || c.OverlapEnd != "11:00" {
		t.Fatalf("overlap = %s-%s", c.OverlapStart, c.OverlapEnd)
	}
}

func TestCalculateConflictsSkipsDegenerateSpans(t *testing.T) {
	lines := []Line{{
		LineID: "L1",
		Positions: []Position{
			{Position: 1, OrderID: "a", MixerID: "M1", StartAt: "08:00", EndAt: "08:00"},
			{Position: 2, OrderID: "b", MixerID: "M1", StartAt: "08:00", EndAt: "09:00", DurationMin: 60},
		},
	}}

	if got := calculateConflicts(lines, nil); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %+v", got)
	}
}

func TestCalculateConflictsSeparateMixers(t *testing.T) {
	lines := []Line{{
		LineID: "L1",
		Positions: []Position{
			{Position: 1, OrderID: "a", MixerID: "M1", StartAt: "08:00", EndAt: "09:00", DurationMin: 60},
			{Position: 2, OrderID: "b", MixerID: "M2", StartAt: "08:00", EndAt: "09:00", DurationMin: 60},
		},
	}}

	if got := calculateConflicts(lines, nil); len(got) != 0 {
		t.Fatalf("expected no conflicts across mixers, got %+v", got)
	}
}
