package contact

import (
	"errors"
	"fmt"

	"brokerage/internal/domain"
	"brokerage/internal/pkg/validator"
)

var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrDuplicateContact     = errors.New("contact already exists")
	ErrInvalidTransition    = errors.New("invalid category transition")
	ErrContactInUse         = errors.New("contact has rentals and cannot be deleted")
	ErrConsultationMismatch = errors.New("consultation belongs to another contact")
)

// ErrMissingIdentity rejects a candidate with neither phone nor email.
var ErrMissingIdentity = &validator.ValidationError{
	Code:    validator.CodeRequired,
	Field:   "phone",
	Message: "phone or email is required",
}

// DuplicateContactError points at the contact that already owns the phone
// or email.
type DuplicateContactError struct {
	ExistingID int64
	Field      string
}

func (e *DuplicateContactError) Error() string {
	return fmt.Sprintf("contact %d already uses this %s", e.ExistingID, e.Field)
}

func (e *DuplicateContactError) Is(target error) bool {
	return target == ErrDuplicateContact
}

type TransitionError struct {
	From domain.ContactCategory
	To   domain.ContactCategory
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
