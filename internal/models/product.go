package models

import (
	"github.com/shopspring/decimal"
)

// Product represents an item in the storefront catalog.
// DynamicPrice and CarbonScore are optional; use EffectivePrice and
// EffectiveCarbon rather than reading them directly.
type Product struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	BasePrice    decimal.Decimal     `json:"basePrice"`
	DynamicPrice decimal.NullDecimal `json:"dynamicPrice"`
	CarbonScore  decimal.NullDecimal `json:"carbonScore"`
	IsPerishable bool                `json:"isPerishable"`
	Image        string              `json:"image,omitempty"`
}

// EffectivePrice returns the dynamic price when set, otherwise the base price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DynamicPrice.Valid {
		return p.DynamicPrice.Decimal
	}
	return p.BasePrice
}

// EffectiveCarbon returns the carbon score, or zero when it is unknown.
func (p Product) EffectiveCarbon() decimal.Decimal {
	if p.CarbonScore.Valid {
		return p.CarbonScore.Decimal
	}
	return decimal.Zero
}

// Price wraps a value as a set optional decimal.
func Price(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}
