package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the gorm-backed repositories over one connection or transaction.
type Store struct {
	db *gorm.DB
}

var _ Transactor = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Contacts() ContactStore { return NewContactRepository(s.db) }

func (s *Store) Consultations() ConsultationStore { return NewConsultationRepository(s.db) }

func (s *Store) Rentals() RentalStore { return NewRentalRepository(s.db) }

func (s *Store) Properties() PropertyStore { return NewPropertyRepository(s.db) }

func (s *Store) Links() LinkStore { return NewLinkRepository(s.db) }

// Transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&Store{db: gtx})
	})
}

// Models lists the persistence models in dependency order for migrations.
func Models() []interface{} {
	return []interface{}{
		&contactModel{},
		&propertyModel{},
		&consultationModel{},
		&rentalModel{},
		&linkModel{},
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func page(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
