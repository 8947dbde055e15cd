package catalog

import (
	"context"

	"brokerage/internal/domain"
	"brokerage/internal/repository"
)

// PropertyRepository is the persistence port of the catalog.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByCode(ctx context.Context, code string) (*domain.Property, error)
	List(ctx context.Context, f repository.PropertyFilter) ([]domain.Property, int64, error)
	UpdatePricing(ctx context.Context, id int64, basePrice, discountPct, surchargePct float64) error
}
