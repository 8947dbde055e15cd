package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

func TestPeriodOverlaps(t *testing.T) {
	jan := Period{Start: day("2024-01-01"), End: day("2024-06-01")}
	adjacent := Period{Start: day("2024-06-01"), End: day("2024-12-01")}
	inside := Period{Start: day("2024-02-01"), End: day("2024-03-01")}
	straddle := Period{Start: day("2023-12-01"), End: day("2024-01-02")}

	assert.False(t, jan.Overlaps(adjacent))
	assert.False(t, adjacent.Overlaps(jan))
	assert.True(t, jan.Overlaps(inside))
	assert.True(t, inside.Overlaps(jan))
	assert.True(t, jan.Overlaps(straddle))
	assert.True(t, straddle.Overlaps(jan))
	assert.Equal(t, "2024-01-01 to 2024-06-01", jan.String())
}

func TestRentalActiveOn(t *testing.T) {
	r := Rental{StartDate: day("2025-01-01"), EndDate: day("2025-06-01")}
	assert.True(t, r.ActiveOn(day("2025-01-01")))
	assert.True(t, r.ActiveOn(day("2025-05-31")))
	assert.False(t, r.ActiveOn(day("2025-06-01")))
}

func TestRef(t *testing.T) {
	id := int64(7)
	r, ok := NewRef(&id, "P1")
	assert.True(t, ok)
	got, isID := r.ID()
	assert.True(t, isID)
	assert.Equal(t, int64(7), got)

	r, ok = NewRef(nil, " P1 ")
	assert.True(t, ok)
	name, isName := r.Name()
	assert.True(t, isName)
	assert.Equal(t, "P1", name)

	_, ok = NewRef(nil, "  ")
	assert.False(t, ok)
}
