package contact

import "brokerage/internal/domain"

// transitions lists the allowed category changes. Tenant and Owner are
// stable; only a lead can be converted.
var transitions = map[domain.ContactCategory][]domain.ContactCategory{
	domain.CategoryLead: {domain.CategoryTenant, domain.CategoryOwner},
}

func CanTransition(from, to domain.ContactCategory) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a *TransitionError when from -> to is not allowed.
func CheckTransition(from, to domain.ContactCategory) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
