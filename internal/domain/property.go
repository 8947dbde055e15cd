package domain

import "time"

type PropertyKind string

const (
	KindApartment  PropertyKind = "apartment"
	KindHouse      PropertyKind = "house"
	KindCommercial PropertyKind = "commercial"
	KindLand       PropertyKind = "land"
)

type PropertyOperation string

const (
	OperationRent PropertyOperation = "rent"
	OperationSale PropertyOperation = "sale"
)

type Property struct {
	ID           int64             `json:"id"`
	Code         string            `json:"code"`
	Title        string            `json:"title"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	Kind         PropertyKind      `json:"kind"`
	Operation    PropertyOperation `json:"operation"`
	BasePrice    float64           `json:"base_price"`
	DiscountPct  float64           `json:"discount_pct"`
	SurchargePct float64           `json:"surcharge_pct"`
	Currency     string            `json:"currency"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
