package rental

type CreateRentalRequest struct {
	PropertyID    *int64  `json:"property_id,omitempty"`
	PropertyCode  string  `json:"property_code,omitempty"`
	TenantID      int64   `json:"tenant_id" validate:"required,gt=0"`
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date" validate:"required"`
	MonthlyAmount float64 `json:"monthly_amount"`
	Currency      string  `json:"currency,omitempty"`
}

type UpdateRentalRequest struct {
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date" validate:"required"`
	MonthlyAmount float64 `json:"monthly_amount"`
	Currency      string  `json:"currency,omitempty"`
}
