package rental

import (
	"context"

	"brokerage/internal/domain"
)

// PropertyResolver maps an id-or-code reference to a stored property.
type PropertyResolver interface {
	ResolveProperty(ctx context.Context, ref domain.Ref) (*domain.Property, error)
}
