package liveedit

import (
	"context"
	"errors"

	"bottling-backend/internal/schedule"
	"bottling-backend/internal/shared/metrics"
	"bottling-backend/internal/shared/telemetry"
)

// Planner is the slice of the schedule service the live-edit flow needs: the
// current plan to fork from and the publish fold-back.
type Planner interface {
	Plan() schedule.Plan
	ApplyUpdates(ctx context.Context, updates []schedule.PositionUpdate) schedule.Plan
}

// Service orchestrates live-edit sessions against the session store and the
// planner. The session value itself carries all edit semantics; the service
// only loads, transforms and stores.
type Service struct {
	Store   *Store
	Planner Planner
}

// Create forks a new session for the given date from the current plan. An
// existing session for the same date is replaced.
func (s *Service) Create(ctx context.Context, date string) (Session, error) {
	plan := s.Planner.Plan()
	session := New(date, plan.Orders, plan.MixerBlocks)
	if err := s.Store.Put(ctx, session); err != nil {
		return Session{}, err
	}
	telemetry.Info("liveedit.session_created", map[string]any{
		"session_id": session.SessionID,
		"lines":      len(session.Lines),
	})
	return session, nil
}

// Get returns a session by id.
func (s *Service) Get(ctx context.Context, sessionID string) (Session, error) {
	return s.Store.Get(ctx, sessionID)
}

// SaveRestQty applies a quantity correction to a session position.
func (s *Service) SaveRestQty(ctx context.Context, sessionID, orderID string, restQty float64, expectedVersion int) (Session, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	next, err := session.SaveRestQty(orderID, restQty, expectedVersion, s.reservations())
	if err != nil {
		countRejection(err)
		return Session{}, err
	}
	if err := s.Store.Put(ctx, next); err != nil {
		return Session{}, err
	}
	metrics.IncLiveEdits()
	return next, nil
}

// DeleteOrder removes a position from a session.
func (s *Service) DeleteOrder(ctx context.Context, sessionID, orderID string, expectedVersion int) (Session, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	next, err := session.DeleteOrder(orderID, expectedVersion, s.reservations())
	if err != nil {
		countRejection(err)
		return Session{}, err
	}
	if err := s.Store.Put(ctx, next); err != nil {
		return Session{}, err
	}
	metrics.IncLiveEdits()
	return next, nil
}

// Undo restores a session's most recent snapshot.
func (s *Service) Undo(ctx context.Context, sessionID string) (Session, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}

	next := session.Undo(s.reservations())
	if err := s.Store.Put(ctx, next); err != nil {
		return Session{}, err
	}
	metrics.IncLiveUndos()
	return next, nil
}

// Publish gates the session and, on success, folds its positions back into
// the authoritative plan and discards the session.
func (s *Service) Publish(ctx context.Context, sessionID string, expectedVersion int) (PublishResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return PublishResult{}, err
	}

	result, err := session.Publish(expectedVersion)
	if err != nil {
		countRejection(err)
		return PublishResult{}, err
	}

	s.Planner.ApplyUpdates(ctx, session.Updates())
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return PublishResult{}, err
	}
	metrics.IncLivePublishes()
	telemetry.Info("liveedit.session_published", map[string]any{
		"session_id": session.SessionID,
		"version":    session.Version,
	})
	return result, nil
}

// reservations snapshots the plan's stored manufacturing blocks, which may
// have changed since the session was forked.
func (s *Service) reservations() []schedule.MixerBlock {
	return s.Planner.Plan().MixerBlocks
}

func countRejection(err error) {
	if errors.Is(err, schedule.ErrVersionConflict) {
		metrics.IncVersionConflicts()
	}
}
