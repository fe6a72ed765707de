package linerates

import "context"

// Repo defines persistence operations for line fill rates.
type Repo interface {
	LoadAll(ctx context.Context) (Rates, error)
	SaveAll(ctx context.Context, rates Rates) error
}
