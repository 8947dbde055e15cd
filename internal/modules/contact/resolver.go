package contact

import (
	"context"
	"fmt"

	"brokerage/internal/domain"
	"brokerage/internal/pkg/validator"
)

type MatchKind string

const (
	MatchNone  MatchKind = ""
	MatchPhone MatchKind = "phone"
	MatchEmail MatchKind = "email"
)

// Candidate is a person who may or may not already be a contact. Only Phone
// and Email take part in resolution; the names are used when a new lead has
// to be created.
type Candidate struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	DNI       string
}

func (c Candidate) hasIdentity() bool {
	return validator.NormalizePhone(c.Phone) != "" || validator.NormalizeEmail(c.Email) != ""
}

type Resolution struct {
	Contact   *domain.Contact `json:"contact,omitempty"`
	MatchedBy MatchKind       `json:"matched_by,omitempty"`
}

func (r Resolution) Found() bool { return r.Contact != nil }

// Resolver finds the existing contact for a candidate. It never writes.
type Resolver struct {
	contacts ContactFinder
}

func NewResolver(contacts ContactFinder) *Resolver {
	return &Resolver{contacts: contacts}
}

// Resolve looks the candidate up by normalized phone, then by
// case-insensitive email. When phone and email point at different contacts
// the phone match is returned.
func (r *Resolver) Resolve(ctx context.Context, c Candidate) (Resolution, error) {
	if !c.hasIdentity() {
		return Resolution{}, ErrMissingIdentity
	}

	if phone := validator.NormalizePhone(c.Phone); phone != "" {
		found, err := r.contacts.FindByPhone(ctx, phone)
		if err != nil {
			return Resolution{}, fmt.Errorf("find contact by phone: %w", err)
		}
		if found != nil {
			return Resolution{Contact: found, MatchedBy: MatchPhone}, nil
		}
	}

	if email := validator.NormalizeEmail(c.Email); email != "" {
		found, err := r.contacts.FindByEmail(ctx, email)
		if err != nil {
			return Resolution{}, fmt.Errorf("find contact by email: %w", err)
		}
		if found != nil {
			return Resolution{Contact: found, MatchedBy: MatchEmail}, nil
		}
	}

	return Resolution{}, nil
}
