// Package pricing provides the dynamic-price and carbon-score collaborator.
//
// Estimates come from an Estimator. The only implementation here is a seeded
// mock; the catalog pipeline does not care where the numbers come from.
package pricing

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

// ImpactBand buckets a carbon score for display.
type ImpactBand string

const (
	ImpactLow    ImpactBand = "low"
	ImpactMedium ImpactBand = "medium"
	ImpactHigh   ImpactBand = "high"
)

var (
	lowImpactLimit    = decimal.NewFromFloat(0.5)
	mediumImpactLimit = decimal.NewFromFloat(1.0)
)

// BandFor classifies a carbon score: below 0.5 is low, below 1.0 medium.
func BandFor(carbon decimal.Decimal) ImpactBand {
	switch {
	case carbon.LessThan(lowImpactLimit):
		return ImpactLow
	case carbon.LessThan(mediumImpactLimit):
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

// Estimate is one pricing/carbon prediction for a product.
type Estimate struct {
	ProductID    int64           `json:"productId"`
	DynamicPrice decimal.Decimal `json:"dynamicPrice"`
	CarbonScore  decimal.Decimal `json:"carbonScore"`
	Confidence   float64         `json:"confidence"`
	Impact       ImpactBand      `json:"impact"`
}

// Estimator predicts a dynamic price and carbon score for a product.
type Estimator interface {
	Estimate(ctx context.Context, p models.Product) (Estimate, error)
}

// MockEstimator produces plausible random estimates. Each product gets its
// own generator derived from the seed, so results do not depend on call order.
type MockEstimator struct {
	seed int64
}

func NewMockEstimator(seed int64) *MockEstimator {
	return &MockEstimator{seed: seed}
}

// Estimate discounts the base price by up to 30% for perishables and 10%
// otherwise, and draws a carbon score from [0, 2).
func (m *MockEstimator) Estimate(ctx context.Context, p models.Product) (Estimate, error) {
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}

	rng := rand.New(rand.NewSource(m.seed ^ (p.ID * 7919)))

	maxDiscount := 0.1
	if p.IsPerishable {
		maxDiscount = 0.3
	}
	discount := rng.Float64() * maxDiscount

	price := p.BasePrice.Mul(decimal.NewFromFloat(1 - discount)).Round(2)
	carbon := decimal.NewFromFloat(rng.Float64() * 2).Round(1)

	return Estimate{
		ProductID:    p.ID,
		DynamicPrice: price,
		CarbonScore:  carbon,
		Confidence:   0.7 + rng.Float64()*0.3,
		Impact:       BandFor(carbon),
	}, nil
}
