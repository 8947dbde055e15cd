package domain

import "time"

// LinkKind separates the meaning of a contact-property association.
type LinkKind string

const (
	LinkInterest  LinkKind = "interest"
	LinkOwnership LinkKind = "ownership"
	LinkRental    LinkKind = "rental"
)

type PropertyLink struct {
	ID         int64     `json:"id"`
	ContactID  int64     `json:"contact_id"`
	PropertyID int64     `json:"property_id"`
	Kind       LinkKind  `json:"kind"`
	RentalID   *int64    `json:"rental_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
