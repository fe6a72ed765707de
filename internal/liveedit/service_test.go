package liveedit

import (
	"context"
	"errors"
	"testing"

	"bottling-backend/internal/schedule"
)

type fakePlanner struct {
	plan    schedule.Plan
	applied []schedule.PositionUpdate
}

func (f *fakePlanner) Plan() schedule.Plan {
	return f.plan
}

func (f *fakePlanner) ApplyUpdates(ctx context.Context, updates []schedule.PositionUpdate) schedule.Plan {
	f.applied = updates
	return f.plan
}

func newTestLiveEdit(orders ...schedule.Order) (*Service, *fakePlanner) {
	planner := &fakePlanner{plan: schedule.Plan{Orders: orders}}
	return &Service{Store: NewStore(), Planner: planner}, planner
}

func TestCreateReplacesSessionForSameDate(t *testing.T) {
	svc, _ := newTestLiveEdit(sessionOrder("a", "PO-1", "L1", 480, 540, ""))
	ctx := context.Background()

	first, err := svc.Create(ctx, "2025-01-07")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.SaveRestQty(ctx, first.SessionID, "a", 1000, 1); err != nil {
		t.Fatalf("SaveRestQty: %v", err)
	}

	again, err := svc.Create(ctx, "2025-01-07")
	if err != nil {
		t.Fatalf("Create again: %v", err)
	}
	if again.Version != 1 || again.Dirty {
		t.Fatalf("recreated session = version %d dirty %t", again.Version, again.Dirty)
	}
}

func TestPublishFoldsBackAndDiscards(t *testing.T) {
	svc, planner := newTestLiveEdit(
		sessionOrder("a", "PO-1", "L1", 480, 525, ""),
		sessionOrder("b", "PO-2", "L1", 525, 570, ""),
	)
	ctx := context.Background()

	session, err := svc.Create(ctx, "2025-01-07")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	session, err = svc.SaveRestQty(ctx, session.SessionID, "a", 2500, 1)
	if err != nil {
		t.Fatalf("SaveRestQty: %v", err)
	}

	result, err := svc.Publish(ctx, session.SessionID, session.Version)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !result.Published {
		t.Fatalf("result = %+v", result)
	}

	if len(planner.applied) != 2 {
		t.Fatalf("applied %d updates, want 2", len(planner.applied))
	}
	var a schedule.PositionUpdate
	for _, u := range planner.applied {
		if u.OrderID == "a" {
			a = u
		}
	}
	if a.RestQty != 2500 {
		t.Fatalf("a.RestQty = %v, want 2500", a.RestQty)
	}
	if a.Start != 360 || a.End != 383 {
		t.Fatalf("a window = %d-%d, want 360-383", a.Start, a.End)
	}

	if _, err := svc.Get(ctx, session.SessionID); !errors.Is(err, schedule.ErrNotFound) {
		t.Fatalf("expected session discarded, got %v", err)
	}
}

func TestPublishRejectsStaleVersionAndKeepsSession(t *testing.T) {
	svc, planner := newTestLiveEdit(sessionOrder("a", "PO-1", "L1", 480, 540, ""))
	ctx := context.Background()

	session, err := svc.Create(ctx, "2025-01-07")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Publish(ctx, session.SessionID, 42); !errors.Is(err, schedule.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	if planner.applied != nil {
		t.Fatalf("rejected publish must not fold back, applied=%v", planner.applied)
	}
	if _, err := svc.Get(ctx, session.SessionID); err != nil {
		t.Fatalf("session should survive a rejected publish: %v", err)
	}
}

func TestGetUnknownSession(t *testing.T) {
	svc, _ := newTestLiveEdit()
	if _, err := svc.Get(context.Background(), "ist-nope"); !errors.Is(err, schedule.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
