package schedule

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bottling-backend/internal/shared/metrics"
	"bottling-backend/internal/shared/telemetry"
)

// Service owns the authoritative plan. Every mutation is a pure transform on
// the current plan value that is revalidated before the new value is swapped
// in; the snapshot is persisted after each commit.
type Service struct {
	mu      sync.Mutex
	plan    Plan
	Repo    Repo
	Catalog ProductCatalog
	Rates   LineRateConfig
}

// NewService constructs a Service and loads the persisted plan snapshot. A
// load failure starts from an empty plan; persistence stays best-effort.
func NewService(ctx context.Context, repo Repo, catalog ProductCatalog, rates LineRateConfig) *Service {
	s := &Service{Repo: repo, Catalog: catalog, Rates: rates}
	plan, err := repo.Load(ctx)
	if err != nil {
		telemetry.Error("schedule.load_failed", map[string]any{"error": err.Error()})
		return s
	}
	s.plan = plan
	return s
}

// Plan returns a copy of the current plan.
func (s *Service) Plan() Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.clone()
}

// Conflicts returns the ids of blocks currently colliding on a mixer.
func (s *Service) Conflicts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ConflictingBlockIDs(s.plan.Blocks())
}

// CreateOrderInput carries the order-intake request.
type CreateOrderInput struct {
	ProductionOrderNumber string
	ProductID             string
	VolumeLiters          float64
	BottleSize            BottleSize
	LineID                string
	StartAt               string // HH:MM
}

// CreateOrder validates intake input, derives the fill and overall durations
// and places the order on its line.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error) {
	if strings.TrimSpace(in.ProductionOrderNumber) == "" {
		return Order{}, NewValidationError("pon-required", "production order number is required")
	}
	if !(in.VolumeLiters > 0) || math.IsInf(in.VolumeLiters, 0) {
		return Order{}, NewValidationError("volume-invalid", "volume must be a positive number of liters")
	}
	if !ValidBottleSize(in.BottleSize) {
		return Order{}, NewValidationError("bottle-invalid", "unknown bottle size")
	}
	if !ValidLine(in.LineID) {
		return Order{}, NewValidationError("line-invalid", "unknown fill line")
	}

	start, err := ToMinutes(in.StartAt)
	if err != nil {
		return Order{}, NewValidationError("start-invalid", "start time must be HH:MM")
	}

	manufacturing, err := s.Catalog.ManufacturingDurationMin(ctx, in.ProductID)
	if err != nil {
		return Order{}, err
	}
	if manufacturing <= 0 {
		return Order{}, NewValidationError("product-duration-invalid", "product has no valid manufacturing duration")
	}
	productName, err := s.Catalog.ProductName(ctx, in.ProductID)
	if err != nil {
		return Order{}, err
	}

	rate, err := s.Rates.LitersPerMinute(ctx, in.LineID, in.BottleSize)
	if err != nil {
		return Order{}, err
	}

	fillDuration := int(math.Ceil(in.VolumeLiters / rate))
	duration := fillDuration
	if manufacturing > duration {
		duration = manufacturing
	}
	end := start + duration
	if end > DayMinutes {
		return Order{}, NewValidationError("day-exceeded", "order exceeds the planning day (00:00-24:00)")
	}

	order := Order{
		ID:                    uuid.NewString(),
		ProductionOrderNumber: in.ProductionOrderNumber,
		ProductID:             in.ProductID,
		ProductName:           productName,
		VolumeLiters:          in.VolumeLiters,
		BottleSize:            in.BottleSize,
		LineID:                in.LineID,
		Start:                 start,
		End:                   end,
		FillDuration:          fillDuration,
		ManufacturingDuration: manufacturing,
		StartQty:              in.VolumeLiters,
		RestQty:               in.VolumeLiters,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.plan.AddOrder(order)
	if err != nil {
		return Order{}, err
	}
	s.commit(ctx, next)
	metrics.IncOrdersCreated()

	created, _ := next.Order(order.ID)
	return created, nil
}

// DeleteOrder removes an unlocked order and its mixer reservations.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.plan.RemoveOrder(orderID)
	if err != nil {
		return err
	}
	s.commit(ctx, next)
	return nil
}

// SetLocked locks or unlocks an order for day-of-execution.
func (s *Service) SetLocked(ctx context.Context, orderID string, locked bool) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.plan.SetLocked(orderID, locked)
	if err != nil {
		return Order{}, err
	}
	s.commit(ctx, next)
	order, _ := next.Order(orderID)
	return order, nil
}

// Assign reserves the order's manufacturing window on a mixer.
func (s *Service) Assign(ctx context.Context, orderID, mixerID string) (Order, error) {
	if !ValidMixer(mixerID) {
		return Order{}, NewValidationError("mixer-invalid", "unknown mixer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.plan.Assign(orderID, mixerID, uuid.NewString())
	if err != nil {
		return Order{}, err
	}
	s.commit(ctx, next)
	metrics.IncMixerAssignments()
	order, _ := next.Order(orderID)
	return order, nil
}

// Unassign releases the order's mixer reservation.
func (s *Service) Unassign(ctx context.Context, orderID string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.plan.Unassign(orderID)
	if err != nil {
		return Order{}, err
	}
	s.commit(ctx, next)
	order, _ := next.Order(orderID)
	return order, nil
}

// Reorder moves an order before another on the same line, reflows the line's
// timing and commits only if every recomputed mixer block stays feasible.
func (s *Service) Reorder(ctx context.Context, lineID, movedOrderID, targetOrderID string) (Plan, error) {
	started := metrics.NowMillis()

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.plan.Reorder(lineID, movedOrderID, targetOrderID)
	if err != nil {
		metrics.IncReordersRejected()
		return Plan{}, err
	}
	s.commit(ctx, next)
	metrics.IncReordersApplied()
	metrics.ObserveReorderDurationMs(metrics.NowMillis() - started)
	return next.clone(), nil
}

// ApplyUpdates folds published live-edit positions back into the plan.
func (s *Service) ApplyUpdates(ctx context.Context, updates []PositionUpdate) Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.plan.ApplyUpdates(updates)
	s.commit(ctx, next)
	return next.clone()
}

// UsesProduct reports whether any order references the given product.
func (s *Service) UsesProduct(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.plan.Orders {
		if o.ProductID == productID {
			return true
		}
	}
	return false
}

// commit swaps in the new plan and persists the snapshot. Persistence errors
// are logged, not surfaced; the in-memory plan is authoritative.
func (s *Service) commit(ctx context.Context, next Plan) {
	s.plan = next
	if err := s.Repo.Save(ctx, next); err != nil {
		telemetry.Error("schedule.save_failed", map[string]any{"error": err.Error()})
	}
}
