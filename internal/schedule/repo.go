package schedule

import "context"

// ProductCatalog supplies manufacturing durations from the product master data.
type ProductCatalog interface {
	ManufacturingDurationMin(ctx context.Context, productID string) (int, error)
	ProductName(ctx context.Context, productID string) (string, error)
}

// LineRateConfig supplies fill rates per line and bottle size.
type LineRateConfig interface {
	LitersPerMinute(ctx context.Context, lineID string, bottle BottleSize) (float64, error)
}

// Repo persists the authoritative plan as a single opaque snapshot. Load on
// startup, Save after every committed mutation.
type Repo interface {
	Load(ctx context.Context) (Plan, error)
	Save(ctx context.Context, plan Plan) error
}
