package repository

import (
	"context"
	"time"

	"brokerage/internal/domain"
)

// ContactFilter narrows contact listings. Zero values mean "any".
type ContactFilter struct {
	Category domain.ContactCategory
	Search   string
	Limit    int
	Offset   int
}

type ConsultationFilter struct {
	UnreadOnly bool
	ContactID  int64
	PropertyID int64
	Limit      int
	Offset     int
}

type PropertyFilter struct {
	Operation domain.PropertyOperation
	City      string
	Limit     int
	Offset    int
}

// ContactStore persists contacts. FindByPhone and FindByEmail return
// (nil, nil) when nothing matches; GetByID returns ErrNotFound.
type ContactStore interface {
	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	UpdateCategory(ctx context.Context, id int64, category domain.ContactCategory) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Contact, error)
	FindByEmail(ctx context.Context, email string) (*domain.Contact, error)
	List(ctx context.Context, f ContactFilter) ([]domain.Contact, int64, error)
}

type ConsultationStore interface {
	Create(ctx context.Context, c *domain.Consultation) error
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	List(ctx context.Context, f ConsultationFilter) ([]domain.Consultation, int64, error)
	BindContact(ctx context.Context, id, contactID int64) error
	MarkRead(ctx context.Context, id int64) error
	Respond(ctx context.Context, id int64, response string, at time.Time) error
}

type RentalStore interface {
	Create(ctx context.Context, r *domain.Rental) error
	Update(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	FindByProperty(ctx context.Context, propertyID int64) ([]domain.Rental, error)
	FindByTenant(ctx context.Context, tenantID int64) ([]domain.Rental, error)
}

type PropertyStore interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByCode(ctx context.Context, code string) (*domain.Property, error)
	LockForUpdate(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, f PropertyFilter) ([]domain.Property, int64, error)
	UpdatePricing(ctx context.Context, id int64, basePrice, discountPct, surchargePct float64) error
}

// LinkStore persists contact-property associations. Create is idempotent
// on (contact, property, kind).
type LinkStore interface {
	Create(ctx context.Context, l *domain.PropertyLink) error
	ListByContact(ctx context.Context, contactID int64) ([]domain.PropertyLink, error)
}

// Tx exposes the stores bound to one unit of work.
type Tx interface {
	Contacts() ContactStore
	Consultations() ConsultationStore
	Rentals() RentalStore
	Properties() PropertyStore
	Links() LinkStore
}

// Transactor runs fn atomically; fn's stores share the transaction.
type Transactor interface {
	Tx
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}
