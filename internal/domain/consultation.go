package domain

import "time"

type ConsultationType string

const (
	ConsultationGeneral   ConsultationType = "general"
	ConsultationProperty  ConsultationType = "property"
	ConsultationVisit     ConsultationType = "visit"
	ConsultationAppraisal ConsultationType = "appraisal"
)

func (t ConsultationType) Valid() bool {
	switch t {
	case ConsultationGeneral, ConsultationProperty, ConsultationVisit, ConsultationAppraisal:
		return true
	}
	return false
}

// Consultation is an inquiry from a prospect. The submitted name, phone and
// email are kept as typed so a consultation whose contact was removed can
// still be converted.
type Consultation struct {
	ID          int64            `json:"id"`
	ContactID   *int64           `json:"contact_id,omitempty"`
	PropertyID  *int64           `json:"property_id,omitempty"`
	Type        ConsultationType `json:"type"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone,omitempty"`
	Email       string           `json:"email,omitempty"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	Response    string           `json:"response,omitempty"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
