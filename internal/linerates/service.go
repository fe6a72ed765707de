package linerates

import (
	"context"

	"bottling-backend/internal/schedule"
)

// Service contains business logic for line fill rates. It also serves as the
// schedule core's rate config.
type Service struct {
	Repo Repo
}

// Get returns the sanitized full rate table.
func (s *Service) Get(ctx context.Context) (Rates, error) {
	raw, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return Sanitize(raw), nil
}

// Put sanitizes and stores a full rate table, returning what was stored.
func (s *Service) Put(ctx context.Context, rates Rates) (Rates, error) {
	sanitized := Sanitize(rates)
	if err := s.Repo.SaveAll(ctx, sanitized); err != nil {
		return nil, err
	}
	return sanitized, nil
}

// LitersPerMinute implements the schedule core's rate config.
func (s *Service) LitersPerMinute(ctx context.Context, lineID string, bottle schedule.BottleSize) (float64, error) {
	rates, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	perBottle, ok := rates[lineID]
	if !ok {
		return DefaultLitersPerMinute, nil
	}
	rate, ok := perBottle[bottle]
	if !ok {
		return DefaultLitersPerMinute, nil
	}
	return rate, nil
}
