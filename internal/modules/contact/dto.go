package contact

import "brokerage/internal/domain"

type CreateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"max=120"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email     string `json:"email,omitempty" validate:"omitempty,loose_email"`
	DNI       string `json:"dni,omitempty" validate:"max=20"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateContactRequest replaces the editable fields. The category is not
// editable here; see Convert.
type UpdateContactRequest = CreateContactRequest

type ResolveRequest struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type PropertyRef struct {
	ID   *int64 `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
}

func (r PropertyRef) Ref() (domain.Ref, bool) {
	return domain.NewRef(r.ID, r.Code)
}

type InterestRequest struct {
	Property PropertyRef `json:"property"`
}

type SubmitConsultationRequest struct {
	Type     string       `json:"type" validate:"omitempty,oneof=general property visit appraisal"`
	Name     string       `json:"name" validate:"required,max=240"`
	Phone    string       `json:"phone,omitempty" validate:"omitempty,phone"`
	Email    string       `json:"email,omitempty" validate:"omitempty,loose_email"`
	Message  string       `json:"message" validate:"required"`
	Property *PropertyRef `json:"property,omitempty"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required"`
}

type CandidateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email     string `json:"email,omitempty" validate:"omitempty,loose_email"`
	DNI       string `json:"dni,omitempty"`
}

func (r CandidateRequest) candidate() Candidate {
	return Candidate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		DNI:       r.DNI,
	}
}

type TenantTerms struct {
	Property      PropertyRef `json:"property"`
	StartDate     string      `json:"start_date" validate:"required"`
	EndDate       string      `json:"end_date" validate:"required"`
	MonthlyAmount float64     `json:"monthly_amount"`
	Currency      string      `json:"currency,omitempty"`
}

type OwnerTerms struct {
	Properties []PropertyRef `json:"properties,omitempty"`
}

// ConvertRequest names the subject by ContactID, by Candidate, or through
// the consultation it came from.
type ConvertRequest struct {
	ContactID      *int64            `json:"contact_id,omitempty"`
	ConsultationID *int64            `json:"consultation_id,omitempty"`
	Candidate      *CandidateRequest `json:"candidate,omitempty"`
	Target         string            `json:"target" validate:"required,oneof=lead tenant owner"`
	Tenant         *TenantTerms      `json:"tenant,omitempty"`
	Owner          *OwnerTerms       `json:"owner,omitempty"`
}

type ConversionResult struct {
	Contact        *domain.Contact       `json:"contact"`
	Created        bool                  `json:"created"`
	Rental         *domain.Rental        `json:"rental,omitempty"`
	Links          []domain.PropertyLink `json:"links"`
	ConsultationID *int64                `json:"consultation_id,omitempty"`
}

type ConsultationResult struct {
	Consultation   *domain.Consultation `json:"consultation"`
	Contact        *domain.Contact      `json:"contact"`
	ContactCreated bool                 `json:"contact_created"`
}
