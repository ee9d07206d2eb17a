package models

import (
	"strconv"

	"backend/internal/pricing"
)

// TourPackage is a sellable itinerary template. The pricing fields are
// normalized once at the store boundary; business logic only ever sees
// the canonical shape.
type TourPackage struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Description string `json:"description,omitempty"`

	PriceOneWay       pricing.Money `json:"priceOneWay"`
	PriceReturnOnly   pricing.Money `json:"priceReturnOnly"`
	PriceRoundTrip    pricing.Money `json:"priceRoundTrip"`
	SupportsRoundTrip bool          `json:"supportsRoundTrip"`

	DepositAmount     *pricing.Money `json:"depositAmount,omitempty"`
	FirstLegPayout    *pricing.Money `json:"firstLegPayout,omitempty"`
	SecondLegPayout   *pricing.Money `json:"secondLegPayout,omitempty"`
	DepositPercentage *float64       `json:"depositPercentage,omitempty"`

	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// PricingConfig projects the package into the engine's input shape.
func (p TourPackage) PricingConfig() pricing.PackageConfig {
	return pricing.PackageConfig{
		ID:                strconv.FormatInt(p.ID, 10),
		PriceOneWay:       p.PriceOneWay,
		PriceReturnOnly:   p.PriceReturnOnly,
		PriceRoundTrip:    p.PriceRoundTrip,
		SupportsRoundTrip: p.SupportsRoundTrip,
		DepositAmount:     p.DepositAmount,
		FirstLegPayout:    p.FirstLegPayout,
		SecondLegPayout:   p.SecondLegPayout,
		DepositPercentage: p.DepositPercentage,
	}
}

// TourPackageUpdate supports PATCH-style updates via key presence.
type TourPackageUpdate struct {
	Title             *string
	Origin            *string
	Destination       *string
	Description       *string
	PriceOneWay       *pricing.Money
	PriceReturnOnly   *pricing.Money
	PriceRoundTrip    *pricing.Money
	SupportsRoundTrip *bool
	DepositAmount     *pricing.Money
	FirstLegPayout    *pricing.Money
	SecondLegPayout   *pricing.Money
	DepositPercentage *float64
	Active            *bool
}
