package rental

import (
	"fmt"

	"brokerage/internal/domain"
)

// Availability is the outcome of checking a requested period against the
// rentals already recorded for a property.
type Availability struct {
	PropertyID int64          `json:"property_id"`
	Requested  domain.Period  `json:"requested"`
	Available  bool           `json:"available"`
	Conflict   *domain.Rental `json:"conflict,omitempty"`
}

// Reason describes the conflict for staff, e.g.
// "Property is already rented from 2025-01-01 to 2025-06-01".
func (a Availability) Reason() string {
	if a.Available || a.Conflict == nil {
		return ""
	}
	return fmt.Sprintf("Property is already rented from %s to %s",
		a.Conflict.StartDate.Format(domain.DateLayout),
		a.Conflict.EndDate.Format(domain.DateLayout))
}

// Err is nil when available and an *UnavailableError otherwise.
func (a Availability) Err() error {
	if a.Available {
		return nil
	}
	return &UnavailableError{
		PropertyID: a.PropertyID,
		RentalID:   a.Conflict.ID,
		Period:     a.Conflict.Period(),
	}
}

// CheckAvailability reports whether requested fits between the existing
// rentals of propertyID. Intervals are half-open, so a rental ending on the
// day another starts is not a conflict. Rentals of other properties are
// ignored. When several rentals conflict the earliest-starting one is
// reported.
func CheckAvailability(propertyID int64, requested domain.Period, existing []domain.Rental) Availability {
	out := Availability{PropertyID: propertyID, Requested: requested, Available: true}

	for i := range existing {
		r := &existing[i]
		if r.PropertyID != propertyID || !requested.Overlaps(r.Period()) {
			continue
		}
		if out.Conflict == nil || r.StartDate.Before(out.Conflict.StartDate) {
			out.Conflict = r
		}
	}

	if out.Conflict != nil {
		c := *out.Conflict
		out.Conflict = &c
		out.Available = false
	}
	return out
}

// without drops the rental with the given id, used when re-validating an edit.
func without(rentals []domain.Rental, id int64) []domain.Rental {
	out := rentals[:0:0]
	for _, r := range rentals {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
