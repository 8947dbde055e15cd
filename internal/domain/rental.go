package domain

import "time"

const DateLayout = "2006-01-02"

// Period is a half-open [Start, End) interval of calendar dates.
type Period struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Overlaps reports whether p and o share at least one day. Periods that only
// touch (one ends the day the other starts) do not overlap.
func (p Period) Overlaps(o Period) bool {
	return p.Start.Before(o.End) && p.End.After(o.Start)
}

func (p Period) String() string {
	return p.Start.Format(DateLayout) + " to " + p.End.Format(DateLayout)
}

// Rental is an occupancy agreement between a tenant contact and a property.
type Rental struct {
	ID            int64     `json:"id"`
	PropertyID    int64     `json:"property_id"`
	TenantID      int64     `json:"tenant_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MonthlyAmount float64   `json:"monthly_amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *Rental) Period() Period {
	return Period{Start: r.StartDate, End: r.EndDate}
}

// ActiveOn reports whether day falls inside the rental period.
func (r *Rental) ActiveOn(day time.Time) bool {
	return !day.Before(r.StartDate) && day.Before(r.EndDate)
}
