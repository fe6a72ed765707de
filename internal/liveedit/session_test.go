package liveedit

import (
	"errors"
	"testing"

	"bottling-backend/internal/schedule"
)

func sessionOrder(id, pon, lineID string, start, end int, mixerID string) schedule.Order {
	return schedule.Order{
		ID:                    id,
		ProductionOrderNumber: pon,
		ProductID:             "p1",
		ProductName:           "Apfelschorle",
		VolumeLiters:          5000,
		BottleSize:            schedule.BottleHalf,
		LineID:                lineID,
		Start:                 start,
		End:                   end,
		FillDuration:          end - start,
		ManufacturingDuration: 45,
		MixerID:               mixerID,
		StartQty:              5000,
		RestQty:               5000,
	}
}

func TestNewSessionGroupsAndRanks(t *testing.T) {
	orders := []schedule.Order{
		sessionOrder("b", "PO-2", "L1", 540, 600, ""),
		sessionOrder("a", "PO-1", "L1", 480, 540, "M1"),
		sessionOrder("c", "PO-3", "L2", 480, 600, ""),
	}

	s := New("2025-01-07", orders, nil)
	if s.SessionID != "ist-2025-01-07" {
		t.Fatalf("SessionID = %q", s.SessionID)
	}
	if s.Version != 1 {
		t.Fatalf("Version = %d, want 1", s.Version)
	}
	if s.Dirty {
		t.Fatalf("fresh session must not be dirty")
	}
	if len(s.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(s.Lines))
	}

	l1 := s.Lines[0]
	if l1.LineID != "L1" {
		t.Fatalf("first line = %s, want L1", l1.LineID)
	}
	if l1.Positions[0].OrderID != "a" || l1.Positions[0].Position != 1 {
		t.Fatalf("first position = %+v", l1.Positions[0])
	}
	if l1.Positions[1].OrderID != "b" || l1.Positions[1].Position != 2 {
		t.Fatalf("second position = %+v", l1.Positions[1])
	}
	if l1.Positions[0].DurationMin != 60 {
		t.Fatalf("DurationMin = %d, want 60", l1.Positions[0].DurationMin)
	}
	if l1.Positions[0].StartAt != "08:00" || l1.Positions[0].EndAt != "09:00" {
		t.Fatalf("window = %s-%s", l1.Positions[0].StartAt, l1.Positions[0].EndAt)
	}
}

func TestSaveRestQtyScalesDurationAndRetimes(t *testing.T) {
	orders := []schedule.Order{
		sessionOrder("a", "PO-1", "L1", 480, 525, ""),
		sessionOrder("b", "PO-2", "L1", 525, 570, ""),
	}
	s := New("2025-01-07", orders, nil)

	// 45 minutes at half the quantity rounds up to 23.
	next, err := s.SaveRestQty("a", 2500, 1, nil)
	if err != nil {
		t.Fatalf("SaveRestQty: %v", err)
	}

	if next.Version != 2 {
		t.Fatalf("Version = %d, want 2", next.Version)
	}
	if !next.Dirty || !next.CanUpdatePlanner {
		t.Fatalf("expected dirty publishable session, got dirty=%t can=%t", next.Dirty, next.CanUpdatePlanner)
	}

	p := next.Lines[0].Positions[0]
	if p.DurationMin != 23 {
		t.Fatalf("DurationMin = %d, want 23", p.DurationMin)
	}
	// Repacked from the 06:00 anchor.
	if p.StartAt != "06:00" || p.EndAt != "06:23" {
		t.Fatalf("window = %s-%s, want 06:00-06:23", p.StartAt, p.EndAt)
	}
	successor := next.Lines[0].Positions[1]
	if successor.StartAt != "06:23" {
		t.Fatalf("successor StartAt = %s, want 06:23", successor.StartAt)
	}
	if next.HistoryDepth() != 1 {
		t.Fatalf("HistoryDepth = %d, want 1", next.HistoryDepth())
	}

	// The pre-mutation session is untouched.
	if s.Lines[0].Positions[0].DurationMin != 45 {
		t.Fatalf("original session mutated")
	}
}

func TestSaveRestQtyVersionGate(t *testing.T) {
	s := New("2025-01-07", []schedule.Order{sessionOrder("a", "PO-1", "L1", 480, 540, "")}, nil)

	_, err := s.SaveRestQty("a", 100, 99, nil)
	if !errors.Is(err, schedule.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestSaveRestQtyValidation(t *testing.T) {
	s := New("2025-01-07", []schedule.Order{sessionOrder("a", "PO-1", "L1", 480, 540, "")}, nil)

	if _, err := s.SaveRestQty("a", -1, 1, nil); err == nil {
		t.Fatalf("expected error for negative rest")
	}

	var vErr *schedule.ValidationError
	_, err := s.SaveRestQty("a", 9999, 1, nil)
	if !errors.As(err, &vErr) || vErr.Code != "restqty-exceeds-start" {
		t.Fatalf("expected restqty-exceeds-start, got %v", err)
	}

	if _, err := s.SaveRestQty("missing", 100, 1, nil); !errors.Is(err, schedule.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRestQtyZeroRemovesPosition(t *testing.T) {
	orders := []schedule.Order{
		sessionOrder("a", "PO-1", "L1", 480, 540, ""),
		sessionOrder("b", "PO-2", "L1", 540, 600, ""),
	}
	s := New("2025-01-07", orders, nil)

	next, err := s.SaveRestQty("a", 0, 1, nil)
	if err != nil {
		t.Fatalf("SaveRestQty: %v", err)
	}

	positions := next.Lines[0].Positions
	if len(positions) != 1 || positions[0].OrderID != "b" {
		t.Fatalf("positions = %+v", positions)
	}
	if positions[0].Position != 1 {
		t.Fatalf("Position = %d, want 1 after renumber", positions[0].Position)
	}
	if positions[0].StartAt != "06:00" {
		t.Fatalf("StartAt = %s, want 06:00", positions[0].StartAt)
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	orders := []schedule.Order{sessionOrder("a", "PO-1", "L1", 480, 540, "")}
	s := New("2025-01-07", orders, nil)

	edited, err := s.SaveRestQty("a", 2500, 1, nil)
	if err != nil {
		t.Fatalf("SaveRestQty: %v", err)
	}
	edited, err = edited.SaveRestQty("a", 1000, 2, nil)
	if err != nil {
		t.Fatalf("SaveRestQty second: %v", err)
	}
	if edited.HistoryDepth() != 2 {
		t.Fatalf("HistoryDepth = %d, want 2", edited.HistoryDepth())
	}

	undone := edited.Undo(nil)
	if undone.Version != 2 {
		t.Fatalf("Version = %d, want 2 after undo", undone.Version)
	}
	if undone.Lines[0].Positions[0].RestQty != 2500 {
		t.Fatalf("RestQty = %v, want 2500", undone.Lines[0].Positions[0].RestQty)
	}
	if undone.HistoryDepth() != 1 {
		t.Fatalf("HistoryDepth = %d, want 1", undone.HistoryDepth())
	}

	// Undo on an empty history is a no-op.
	fresh := New("2025-01-07", orders, nil)
	if got := fresh.Undo(nil); got.Version != 1 {
		t.Fatalf("no-op undo changed version to %d", got.Version)
	}
}

func TestDeleteOrderRepacksLine(t *testing.T) {
	orders := []schedule.Order{
		sessionOrder("a", "PO-1", "L1", 480, 540, ""),
		sessionOrder("b", "PO-2", "L1", 540, 600, ""),
		sessionOrder("c", "PO-3", "L1", 600, 660, ""),
	}
	s := New("2025-01-07", orders, nil)

	next, err := s.DeleteOrder("b", 1, nil)
	if err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	positions := next.Lines[0].Positions
	if len(positions) != 2 {
		t.Fatalf("len(positions) = %d, want 2", len(positions))
	}
	if positions[0].OrderID != "a" || positions[1].OrderID != "c" {
		t.Fatalf("positions = %+v", positions)
	}
	// Only the slot at the removed index onward is repacked from the anchor.
	if positions[0].StartAt != "08:00" {
		t.Fatalf("a StartAt = %s, want 08:00", positions[0].StartAt)
	}
	if positions[1].StartAt != "06:00" {
		t.Fatalf("c StartAt = %s, want 06:00", positions[1].StartAt)
	}
}

func TestPublishGating(t *testing.T) {
	orders := []schedule.Order{sessionOrder("a", "PO-1", "L1", 480, 540, "")}
	s := New("2025-01-07", orders, nil)

	if _, err := s.Publish(5); !errors.Is(err, schedule.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	result, err := s.Publish(1)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !result.Published || result.Dirty {
		t.Fatalf("result = %+v", result)
	}
	if result.MainPlannerVersion != 2 {
		t.Fatalf("MainPlannerVersion = %d, want 2", result.MainPlannerVersion)
	}

	conflicted := s
	conflicted.HasConflicts = true
	var cErr *schedule.ConflictError
	if _, err := conflicted.Publish(1); !errors.As(err, &cErr) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if cErr.Reason != schedule.ReasonMixerOverlap {
		t.Fatalf("reason = %s, want %s", cErr.Reason, schedule.ReasonMixerOverlap)
	}
}

func TestUpdatesHandlePastMidnightClocks(t *testing.T) {
	s := Session{
		Lines: []Line{{
			LineID: "L1",
			Positions: []Position{{
				Position: 1, OrderID: "a", StartQty: 5000, RestQty: 4000,
				StartAt: "23:30", EndAt: "25:10", DurationMin: 100,
			}},
		}},
	}

	updates := s.Updates()
	if len(updates) != 1 {
		t.Fatalf("len(updates) = %d, want 1", len(updates))
	}
	if updates[0].Start != 1410 || updates[0].End != 1510 {
		t.Fatalf("window = %d-%d, want 1410-1510", updates[0].Start, updates[0].End)
	}
}

func TestLockedPositionCannotBeRemoved(t *testing.T) {
	locked := sessionOrder("a", "PO-1", "L1", 480, 540, "M1")
	locked.Locked = true
	orders := []schedule.Order{
		locked,
		sessionOrder("b", "PO-2", "L1", 540, 600, ""),
	}
	s := New("2025-01-07", orders, nil)

	var state *schedule.StateError
	if _, err := s.DeleteOrder("a", 1, nil); !errors.As(err, &state) {
		t.Fatalf("DeleteOrder on locked = %v, want StateError", err)
	}
	if _, err := s.SaveRestQty("a", 0, 1, nil); !errors.As(err, &state) {
		t.Fatalf("SaveRestQty(0) on locked = %v, want StateError", err)
	}

	// A quantity correction on a running locked order is still allowed.
	next, err := s.SaveRestQty("a", 2500, 1, nil)
	if err != nil {
		t.Fatalf("SaveRestQty on locked: %v", err)
	}
	if next.Lines[0].Positions[0].RestQty != 2500 {
		t.Fatalf("position = %+v", next.Lines[0].Positions[0])
	}

	// The unlocked neighbor can still be removed.
	if _, err := s.DeleteOrder("b", 1, nil); err != nil {
		t.Fatalf("DeleteOrder on unlocked: %v", err)
	}
}
