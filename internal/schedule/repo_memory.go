package schedule

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database is
// configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	plan Plan
	set  bool
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Load returns the last saved plan, or an empty plan if none was saved yet.
func (r *MemoryRepo) Load(ctx context.Context) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.set {
		return Plan{}, nil
	}
	return r.plan.clone(), nil
}

// Save stores the plan snapshot.
func (r *MemoryRepo) Save(ctx context.Context, plan Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plan = plan.clone()
	r.set = true
	return nil
}
