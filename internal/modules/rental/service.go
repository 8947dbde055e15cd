package rental

import (
	"context"
	"errors"
	"fmt"

	"brokerage/internal/domain"
	"brokerage/internal/lock"
	"brokerage/internal/modules/catalog"
	"brokerage/internal/pkg/validator"
	"brokerage/internal/repository"

	"go.uber.org/zap"
)

// Terms are validated rental conditions ready to be booked.
type Terms struct {
	PropertyID    int64
	TenantID      int64
	Period        domain.Period
	MonthlyAmount float64
	Currency      string
}

// ParseTerms validates the primitive rental inputs. PropertyID and TenantID
// are left for the caller to fill in.
func ParseTerms(start, end string, monthlyAmount float64, currency, fallbackCurrency string) (Terms, error) {
	r, err := validator.ValidateDateRange(start, end)
	if err != nil {
		return Terms{}, err
	}
	if err := validator.ValidateAmount("monthly_amount", monthlyAmount); err != nil {
		return Terms{}, err
	}
	cur, err := validator.NormalizeCurrency(currency, fallbackCurrency)
	if err != nil {
		return Terms{}, err
	}
	return Terms{
		Period:        domain.Period{Start: r.Start, End: r.End},
		MonthlyAmount: monthlyAmount,
		Currency:      cur,
	}, nil
}

type Service struct {
	store           repository.Transactor
	properties      PropertyResolver
	locker          lock.PropertyLocker
	defaultCurrency string
	logger          *zap.Logger
}

func NewService(
	store repository.Transactor,
	properties PropertyResolver,
	locker lock.PropertyLocker,
	defaultCurrency string,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = lock.NewLocalLocker(lock.DefaultWait)
	}
	return &Service{
		store:           store,
		properties:      properties,
		locker:          locker,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

func (s *Service) DefaultCurrency() string { return s.defaultCurrency }

// WithPropertyLock runs fn while holding the write lock of propertyID.
func (s *Service) WithPropertyLock(ctx context.Context, propertyID int64, fn func(ctx context.Context) error) error {
	release, err := s.locker.Acquire(ctx, propertyID)
	if err != nil {
		s.logger.Warn("property lock not acquired",
			zap.Int64("property_id", propertyID),
			zap.Error(err))
		return fmt.Errorf("lock property %d: %w", propertyID, err)
	}
	defer release()
	return fn(ctx)
}

// BookInTx locks the property row, re-reads its rentals, re-runs the
// availability check and inserts the rental with its rental link, all on tx.
// The caller is expected to hold the property lock.
func (s *Service) BookInTx(ctx context.Context, tx repository.Tx, t Terms) (*domain.Rental, error) {
	if _, err := tx.Properties().LockForUpdate(ctx, t.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, catalog.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("lock property row: %w", err)
	}

	existing, err := tx.Rentals().FindByProperty(ctx, t.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("load rentals: %w", err)
	}
	if av := CheckAvailability(t.PropertyID, t.Period, existing); !av.Available {
		s.logger.Info("rental rejected",
			zap.Int64("property_id", t.PropertyID),
			zap.Int64("conflicting_rental_id", av.Conflict.ID),
			zap.String("reason", av.Reason()))
		return nil, av.Err()
	}

	r := &domain.Rental{
		PropertyID:    t.PropertyID,
		TenantID:      t.TenantID,
		StartDate:     t.Period.Start,
		EndDate:       t.Period.End,
		MonthlyAmount: t.MonthlyAmount,
		Currency:      t.Currency,
	}
	if err := tx.Rentals().Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, &UnavailableError{PropertyID: t.PropertyID}
		}
		return nil, fmt.Errorf("create rental: %w", err)
	}

	rentalID := r.ID
	if err := tx.Links().Create(ctx, &domain.PropertyLink{
		ContactID:  t.TenantID,
		PropertyID: t.PropertyID,
		Kind:       domain.LinkRental,
		RentalID:   &rentalID,
	}); err != nil {
		return nil, fmt.Errorf("link rental: %w", err)
	}
	return r, nil
}

// CreateRental books a new rental for a contact that is already a tenant.
func (s *Service) CreateRental(ctx context.Context, req CreateRentalRequest) (*domain.Rental, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	ref, ok := domain.NewRef(req.PropertyID, req.PropertyCode)
	if !ok {
		return nil, validator.Required("property")
	}
	terms, err := ParseTerms(req.StartDate, req.EndDate, req.MonthlyAmount, req.Currency, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	prop, err := s.properties.ResolveProperty(ctx, ref)
	if err != nil {
		return nil, err
	}
	terms.PropertyID = prop.ID
	terms.TenantID = req.TenantID

	var out *domain.Rental
	err = s.WithPropertyLock(ctx, prop.ID, func(ctx context.Context) error {
		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			tenant, err := tx.Contacts().GetByID(ctx, req.TenantID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrTenantNotFound
				}
				return err
			}
			if tenant.Category != domain.CategoryTenant {
				return ErrNotTenant
			}
			out, err = s.BookInTx(ctx, tx, terms)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("rental created",
		zap.Int64("rental_id", out.ID),
		zap.Int64("property_id", out.PropertyID),
		zap.Int64("contact_id", out.TenantID))
	return out, nil
}

// UpdateRental changes the period and amount of a rental, re-validating the
// new period against every other rental of the property.
func (s *Service) UpdateRental(ctx context.Context, id int64, req UpdateRentalRequest) (*domain.Rental, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	current, err := s.GetRental(ctx, id)
	if err != nil {
		return nil, err
	}
	terms, err := ParseTerms(req.StartDate, req.EndDate, req.MonthlyAmount, req.Currency, current.Currency)
	if err != nil {
		return nil, err
	}
	propertyID := current.PropertyID

	var out *domain.Rental
	err = s.WithPropertyLock(ctx, propertyID, func(ctx context.Context) error {
		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			if _, err := tx.Properties().LockForUpdate(ctx, propertyID); err != nil {
				return fmt.Errorf("lock property row: %w", err)
			}
			r, err := tx.Rentals().GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrRentalNotFound
				}
				return err
			}
			existing, err := tx.Rentals().FindByProperty(ctx, propertyID)
			if err != nil {
				return fmt.Errorf("load rentals: %w", err)
			}
			if av := CheckAvailability(propertyID, terms.Period, without(existing, id)); !av.Available {
				return av.Err()
			}

			r.StartDate = terms.Period.Start
			r.EndDate = terms.Period.End
			r.MonthlyAmount = terms.MonthlyAmount
			r.Currency = terms.Currency
			if err := tx.Rentals().Update(ctx, r); err != nil {
				if errors.Is(err, repository.ErrOverlap) {
					return &UnavailableError{PropertyID: propertyID}
				}
				return fmt.Errorf("update rental: %w", err)
			}
			out = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("rental updated",
		zap.Int64("rental_id", out.ID),
		zap.Int64("property_id", out.PropertyID))
	return out, nil
}

func (s *Service) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	r, err := s.store.Rentals().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return r, nil
}

// ListByProperty returns the rentals of a property ordered by start date.
func (s *Service) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Rental, error) {
	if _, err := s.properties.ResolveProperty(ctx, domain.RefByID(propertyID)); err != nil {
		return nil, err
	}
	return s.store.Rentals().FindByProperty(ctx, propertyID)
}

func (s *Service) ListByTenant(ctx context.Context, contactID int64) ([]domain.Rental, error) {
	return s.store.Rentals().FindByTenant(ctx, contactID)
}

// Availability is the read-only check staff run before offering a period.
func (s *Service) Availability(ctx context.Context, propertyID int64, start, end string) (Availability, error) {
	r, err := validator.ValidateDateRange(start, end)
	if err != nil {
		return Availability{}, err
	}
	existing, err := s.ListByProperty(ctx, propertyID)
	if err != nil {
		return Availability{}, err
	}
	return CheckAvailability(propertyID, domain.Period{Start: r.Start, End: r.End}, existing), nil
}
