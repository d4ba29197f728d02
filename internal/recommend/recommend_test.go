package recommend

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

func shop() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Organic Apples", Category: "Fruits", BasePrice: decimal.NewFromFloat(4.99), DynamicPrice: models.Price(4.49), CarbonScore: models.Price(0.2)},
		{ID: 2, Name: "Eco-Friendly Water Bottle", Category: "Accessories", BasePrice: decimal.NewFromFloat(19.99), DynamicPrice: models.Price(18.99), CarbonScore: models.Price(0.8)},
		{ID: 3, Name: "Organic Bananas", Category: "Fruits", BasePrice: decimal.NewFromFloat(3.49), DynamicPrice: models.Price(2.99), CarbonScore: models.Price(0.3)},
		{ID: 4, Name: "Bamboo Toothbrush", Category: "Personal Care", BasePrice: decimal.NewFromFloat(8.99), DynamicPrice: models.Price(8.99), CarbonScore: models.Price(0.1)},
		{ID: 5, Name: "Reusable Shopping Bag", Category: "Accessories", BasePrice: decimal.NewFromFloat(12.99), DynamicPrice: models.Price(11.99), CarbonScore: models.Price(0.4)},
		{ID: 6, Name: "Solar Phone Charger", Category: "Electronics", BasePrice: decimal.NewFromFloat(49.99), DynamicPrice: models.Price(45.99), CarbonScore: models.Price(1.2)},
	}
}

func recommendedNames(r Result) []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Product.Name
	}
	return out
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{
			name:  "price cap with only stop words",
			query: "Show me eco-friendly products under $20",
			limit: 10,
			want:  []string{"Bamboo Toothbrush", "Organic Apples", "Organic Bananas", "Reusable Shopping Bag", "Eco-Friendly Water Bottle"},
		},
		{
			name:  "keyword with plural folding",
			query: "bananas",
			want:  []string{"Organic Bananas"},
		},
		{
			name:  "partial matches rank below full matches",
			query: "organic fruit apples",
			want:  []string{"Organic Apples", "Organic Bananas"},
		},
		{
			name:  "category keyword",
			query: "accessories below 15",
			want:  []string{"Reusable Shopping Bag"},
		},
		{
			name:  "default limit",
			query: "find low carbon items",
			want:  []string{"Bamboo Toothbrush", "Organic Apples", "Organic Bananas"},
		},
		{
			name:  "nothing matches",
			query: "bicycle",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(shop(), tt.query, tt.limit)
			if diff := cmp.Diff(tt.want, recommendedNames(got)); diff != "" {
				t.Errorf("Recommend(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestRecommend_Metadata(t *testing.T) {
	got := Recommend(shop(), "organic fruit apples under $10", 5)

	if _, err := uuid.Parse(got.QueryID); err != nil {
		t.Errorf("QueryID %q is not a UUID: %v", got.QueryID, err)
	}
	if got.PriceCap == nil || !got.PriceCap.Equal(decimal.NewFromInt(10)) {
		t.Errorf("PriceCap = %v, want 10", got.PriceCap)
	}
	if len(got.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got.Recommendations))
	}
	if got.Recommendations[0].Relevance != 1 {
		t.Errorf("top relevance = %v, want 1", got.Recommendations[0].Relevance)
	}
	if got.Recommendations[1].Relevance != 0.67 {
		t.Errorf("second relevance = %v, want 0.67", got.Recommendations[1].Relevance)
	}
}

func TestRecommend_LimitIsCapped(t *testing.T) {
	got := Recommend(shop(), "", 1000)
	if len(got.Recommendations) != len(shop()) {
		t.Errorf("expected all %d products, got %d", len(shop()), len(got.Recommendations))
	}
}
