package domain

import (
	"strings"
	"time"
)

type ContactCategory string

const (
	CategoryLead   ContactCategory = "lead"
	CategoryTenant ContactCategory = "tenant"
	CategoryOwner  ContactCategory = "owner"
)

func (c ContactCategory) Valid() bool {
	switch c {
	case CategoryLead, CategoryTenant, CategoryOwner:
		return true
	}
	return false
}

// Contact is a person known to the brokerage. Phone holds the normalized
// form and Email the lower-cased form; both are identity keys when non-empty.
type Contact struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	DNI       string          `json:"dni,omitempty"`
	Category  ContactCategory `json:"category"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Contact) IsLead() bool {
	return c.Category == CategoryLead
}
