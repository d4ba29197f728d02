package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosmart-shop/catalog-api/internal/models"
	"github.com/ecosmart-shop/catalog-api/internal/pricing"
)

func TestSummarize(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Organic Apples", Category: "Fruits", BasePrice: decimal.NewFromFloat(4.99), DynamicPrice: models.Price(4.49), CarbonScore: models.Price(0.2)},
		{ID: 2, Name: "Eco-Friendly Water Bottle", Category: "Accessories", BasePrice: decimal.NewFromFloat(19.99), CarbonScore: models.Price(0.8)},
		{ID: 3, Name: "Organic Bananas", Category: "Fruits", BasePrice: decimal.NewFromFloat(3.49)},
		{ID: 6, Name: "Solar Phone Charger", Category: "Electronics", BasePrice: decimal.NewFromFloat(49.99), CarbonScore: models.Price(1.2)},
	}

	o := Summarize(products)

	assert.Equal(t, 4, o.TotalProducts)
	// (0.2 + 0.8 + 0 + 1.2) / 4
	assert.True(t, o.AverageCarbon.Equal(decimal.NewFromFloat(0.55)), "avg carbon = %s", o.AverageCarbon)
	// (4.49 + 19.99 + 3.49 + 49.99) / 4 = 19.49
	assert.True(t, o.AveragePrice.Equal(decimal.NewFromFloat(19.49)), "avg price = %s", o.AveragePrice)

	require.Len(t, o.Categories, 3)
	assert.Equal(t, CategoryCount{Name: "Fruits", Count: 2}, o.Categories[0])
	assert.Equal(t, CategoryCount{Name: "Accessories", Count: 1}, o.Categories[1])
	assert.Equal(t, CategoryCount{Name: "Electronics", Count: 1}, o.Categories[2])

	assert.Equal(t, 2, o.ImpactBands[pricing.ImpactLow])
	assert.Equal(t, 1, o.ImpactBands[pricing.ImpactMedium])
	assert.Equal(t, 1, o.ImpactBands[pricing.ImpactHigh])
}

func TestSummarize_Empty(t *testing.T) {
	o := Summarize(nil)

	assert.Zero(t, o.TotalProducts)
	assert.True(t, o.AverageCarbon.IsZero())
	assert.True(t, o.AveragePrice.IsZero())
	assert.Empty(t, o.Categories)
}
