package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"bottling-backend/internal/schedule"
)

// OrderUsage reports whether a product is still referenced by the plan.
type OrderUsage interface {
	UsesProduct(productID string) bool
}

// Service contains business logic for product master data. It also serves as
// the schedule core's product catalog.
type Service struct {
	Repo  Repo
	Usage OrderUsage
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, name, articleNumber string, durationMin int) (Product, error) {
	name = strings.TrimSpace(name)
	articleNumber = NormalizeArticleNumber(articleNumber)
	if name == "" || articleNumber == "" || durationMin <= 0 {
		return Product{}, ErrInvalidInput
	}

	if err := s.checkUnique(ctx, "", name, articleNumber); err != nil {
		return Product{}, err
	}

	p := Product{
		ID:                       uuid.NewString(),
		Name:                     name,
		ArticleNumber:            articleNumber,
		ManufacturingDurationMin: durationMin,
		CreatedAt:                time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update validates and stores changed product fields.
func (s *Service) Update(ctx context.Context, id, name, articleNumber string, durationMin int) (Product, error) {
	name = strings.TrimSpace(name)
	articleNumber = NormalizeArticleNumber(articleNumber)
	if name == "" || articleNumber == "" || durationMin <= 0 {
		return Product{}, ErrInvalidInput
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if err := s.checkUnique(ctx, id, name, articleNumber); err != nil {
		return Product{}, err
	}

	existing.Name = name
	existing.ArticleNumber = articleNumber
	existing.ManufacturingDurationMin = durationMin
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Product{}, err
	}
	return existing, nil
}

// Delete removes a product unless an order still references it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Usage != nil && s.Usage.UsesProduct(id) {
		return ErrInUse
	}
	return s.Repo.Delete(ctx, id)
}

// Get returns a product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all products sorted by name.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.Repo.List(ctx)
}

// ManufacturingDurationMin implements the schedule core's product catalog. An
// unknown product surfaces as an intake validation error.
func (s *Service) ManufacturingDurationMin(ctx context.Context, productID string) (int, error) {
	p, err := s.Repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, schedule.NewValidationError("product-unknown", "product does not exist in the master data")
		}
		return 0, err
	}
	return p.ManufacturingDurationMin, nil
}

// ProductName implements the schedule core's product catalog.
func (s *Service) ProductName(ctx context.Context, productID string) (string, error) {
	p, err := s.Repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", schedule.NewValidationError("product-unknown", "product does not exist in the master data")
		}
		return "", err
	}
	return p.Name, nil
}

func (s *Service) checkUnique(ctx context.Context, excludeID, name, articleNumber string) error {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	for _, other := range all {
		if other.ID == excludeID {
			continue
		}
		if strings.EqualFold(other.Name, name) {
			return ErrDuplicateName
		}
		if other.ArticleNumber == articleNumber {
			return ErrDuplicateNumber
		}
	}
	return nil
}
