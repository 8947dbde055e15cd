package catalog

import "brokerage/internal/pkg/pricing"

type CreatePropertyRequest struct {
	Code         string  `json:"code" validate:"required,max=32"`
	Title        string  `json:"title" validate:"required,max=200"`
	Address      string  `json:"address" validate:"max=255"`
	City         string  `json:"city" validate:"max=120"`
	Kind         string  `json:"kind" validate:"required,oneof=apartment house commercial land"`
	Operation    string  `json:"operation" validate:"required,oneof=rent sale"`
	BasePrice    float64 `json:"base_price" validate:"gte=0"`
	DiscountPct  float64 `json:"discount_pct"`
	SurchargePct float64 `json:"surcharge_pct"`
	Currency     string  `json:"currency"`
}

type UpdatePricingRequest struct {
	BasePrice    float64 `json:"base_price" validate:"gte=0"`
	DiscountPct  float64 `json:"discount_pct"`
	SurchargePct float64 `json:"surcharge_pct"`
}

// QuoteRequest overrides the stored pricing for a what-if quote. Nil fields
// fall back to the property's values.
type QuoteRequest struct {
	BasePrice    *float64 `json:"base_price,omitempty"`
	DiscountPct  *float64 `json:"discount_pct,omitempty"`
	SurchargePct *float64 `json:"surcharge_pct,omitempty"`
}

type Quote struct {
	PropertyID int64             `json:"property_id"`
	Code       string            `json:"code"`
	Currency   string            `json:"currency"`
	Breakdown  pricing.Breakdown `json:"breakdown"`
	Price      float64           `json:"price"`
}
