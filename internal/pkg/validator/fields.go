package validator

import (
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// patterns is compiled once at init and only read afterwards.
var patterns = struct {
	email           *regexp.Regexp
	nonDigit        *regexp.Regexp
	normalizedPhone *regexp.Regexp
	currency        *regexp.Regexp
}{
	email:           regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,6}$`),
	nonDigit:        regexp.MustCompile(`\D`),
	normalizedPhone: regexp.MustCompile(`^\+?[0-9]+$`),
	currency:        regexp.MustCompile(`^[A-Z]{3}$`),
}

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "\t", "")

// SupportedCurrencies lists the ISO codes accepted for rentals and prices.
var SupportedCurrencies = map[string]bool{
	"ARS": true,
	"USD": true,
	"EUR": true,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// DateRange is a validated half-open [Start, End) pair of calendar dates in UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NormalizePhone strips spaces, hyphens, parentheses and dots and keeps a
// single leading '+'. Idempotent.
func NormalizePhone(raw string) string {
	s := phoneSeparators.Replace(raw)
	if s == "" {
		return ""
	}
	plus := strings.HasPrefix(s, "+")
	s = strings.ReplaceAll(s, "+", "")
	if plus {
		return "+" + s
	}
	return s
}

// ValidateEmail is a light local@domain.tld check.
func ValidateEmail(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	return patterns.email.MatchString(s)
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidatePhoneDigits returns the normalized phone when it carries between
// 10 and 15 digits and nothing but an optional leading '+'.
func ValidatePhoneDigits(raw string) (string, error) {
	digits := patterns.nonDigit.ReplaceAllString(raw, "")
	if n := len(digits); n < minPhoneDigits || n > maxPhoneDigits {
		return "", newError(CodeInvalidPhoneFormat, "phone", "must contain between 10 and 15 digits")
	}
	normalized := NormalizePhone(raw)
	if !patterns.normalizedPhone.MatchString(normalized) {
		return "", newError(CodeInvalidPhoneFormat, "phone", "contains characters other than digits and separators")
	}
	return normalized, nil
}

// ParseDate parses a calendar date and truncates it to UTC midnight.
func ParseDate(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, newError(CodeInvalidDate, field, "is empty")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, newError(CodeInvalidDate, field, "is not a valid date: "+s)
}

// ValidateDateRange parses both ends and requires end > start.
func ValidateDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate("start_date", start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate("end_date", end)
	if err != nil {
		return DateRange{}, err
	}
	if !e.After(s) {
		return DateRange{}, newError(CodeEndBeforeStart, "end_date", "must be after start_date")
	}
	return DateRange{Start: s, End: e}, nil
}

// ValidateAmount requires a finite, strictly positive amount.
func ValidateAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return newError(CodeInvalidAmount, field, "must be a positive amount")
	}
	return nil
}

// NormalizeCurrency upper-cases a code and checks it against SupportedCurrencies.
// An empty value yields fallback.
func NormalizeCurrency(raw, fallback string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		s = strings.ToUpper(strings.TrimSpace(fallback))
	}
	if !patterns.currency.MatchString(s) || !SupportedCurrencies[s] {
		return "", newError(CodeInvalidCurrency, "currency", "unsupported currency "+s)
	}
	return s, nil
}
