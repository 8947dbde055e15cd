package rental

import (
	"errors"
	"fmt"

	"brokerage/internal/domain"
)

var (
	ErrRentalNotFound = errors.New("rental not found")
	ErrTenantNotFound = errors.New("tenant contact not found")
	ErrNotTenant      = errors.New("contact is not a tenant")
	ErrUnavailable    = errors.New("property unavailable for the requested period")
)

// UnavailableError names the rental that blocks a request. RentalID is zero
// when the conflict was reported by the database constraint rather than
// found by the availability check.
type UnavailableError struct {
	PropertyID int64
	RentalID   int64
	Period     domain.Period
}

func (e *UnavailableError) Error() string {
	if e.Period.Start.IsZero() {
		return fmt.Sprintf("property %d is already rented for an overlapping period", e.PropertyID)
	}
	return fmt.Sprintf("Property is already rented from %s to %s",
		e.Period.Start.Format(domain.DateLayout),
		e.Period.End.Format(domain.DateLayout))
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
