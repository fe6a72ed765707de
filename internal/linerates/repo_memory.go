package linerates

import (
	"context"
	"sync"

	"bottling-backend/internal/schedule"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	rates Rates
}

// NewMemoryRepo constructs a MemoryRepo seeded with default rates.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rates: Defaults()}
}

// LoadAll returns a copy of the stored rate table.
func (r *MemoryRepo) LoadAll(ctx context.Context) (Rates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyRates(r.rates), nil
}

// SaveAll replaces the stored rate table.
func (r *MemoryRepo) SaveAll(ctx context.Context, rates Rates) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = copyRates(rates)
	return nil
}

func copyRates(in Rates) Rates {
	out := make(Rates, len(in))
	for lineID, perBottle := range in {
		out[lineID] = make(map[schedule.BottleSize]float64, len(perBottle))
		for bottle, rate := range perBottle {
			out[lineID][bottle] = rate
		}
	}
	return out
}
