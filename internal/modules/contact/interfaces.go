package contact

import (
	"context"

	"brokerage/internal/domain"
	"brokerage/internal/modules/rental"
	"brokerage/internal/repository"
)

// ContactFinder is the read side the resolver needs. Both methods return
// (nil, nil) when nothing matches.
type ContactFinder interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Contact, error)
	FindByEmail(ctx context.Context, email string) (*domain.Contact, error)
}

type PropertyResolver interface {
	ResolveProperty(ctx context.Context, ref domain.Ref) (*domain.Property, error)
}

// Booker books a rental inside a caller-owned transaction while the caller
// holds the property lock.
type Booker interface {
	WithPropertyLock(ctx context.Context, propertyID int64, fn func(ctx context.Context) error) error
	BookInTx(ctx context.Context, tx repository.Tx, t rental.Terms) (*domain.Rental, error)
	DefaultCurrency() string
}

var (
	_ ContactFinder = (repository.ContactStore)(nil)
	_ Booker        = (*rental.Service)(nil)
)
