// Package analytics computes the admin dashboard figures from the catalog.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/ecosmart-shop/catalog-api/internal/catalog"
	"github.com/ecosmart-shop/catalog-api/internal/models"
	"github.com/ecosmart-shop/catalog-api/internal/pricing"
	"github.com/ecosmart-shop/catalog-api/internal/rewards"
)

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Overview struct {
	TotalProducts int                        `json:"totalProducts"`
	AverageCarbon decimal.Decimal            `json:"avgCarbonScore"`
	AveragePrice  decimal.Decimal            `json:"avgPrice"`
	Categories    []CategoryCount            `json:"categories"`
	ImpactBands   map[pricing.ImpactBand]int `json:"impactBands"`
	TopUsers      []rewards.Standing         `json:"topUsers,omitempty"`
}

// Summarize aggregates effective prices and carbon scores over products.
// Averages are rounded to two decimal places and are zero for an empty catalog.
func Summarize(products []models.Product) Overview {
	o := Overview{
		TotalProducts: len(products),
		AverageCarbon: decimal.Zero,
		AveragePrice:  decimal.Zero,
		Categories:    []CategoryCount{},
		ImpactBands: map[pricing.ImpactBand]int{
			pricing.ImpactLow:    0,
			pricing.ImpactMedium: 0,
			pricing.ImpactHigh:   0,
		},
	}
	if len(products) == 0 {
		return o
	}

	counts := make(map[string]int)
	carbon, price := decimal.Zero, decimal.Zero
	for _, p := range products {
		counts[p.Category]++
		carbon = carbon.Add(p.EffectiveCarbon())
		price = price.Add(p.EffectivePrice())
		o.ImpactBands[pricing.BandFor(p.EffectiveCarbon())]++
	}

	n := decimal.NewFromInt(int64(len(products)))
	o.AverageCarbon = carbon.Div(n).Round(2)
	o.AveragePrice = price.Div(n).Round(2)

	for _, name := range catalog.DistinctCategories(products) {
		o.Categories = append(o.Categories, CategoryCount{Name: name, Count: counts[name]})
	}

	return o
}
