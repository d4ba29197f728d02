package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleCatalog = `
products:
  - id: 10
    name: Beeswax Wraps
    category: Kitchen
    base_price: 14.5
    dynamic_price: 12.75
    carbon_score: 0.3
  - id: 11
    name: Oat Milk
    category: Dairy Alternatives
    base_price: 3.2
    perishable: true
`

func TestParseYAMLCatalog(t *testing.T) {
	products, err := ParseYAMLCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("ParseYAMLCatalog() error = %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	wraps := products[0]
	if !wraps.EffectivePrice().Equal(decimal.NewFromFloat(12.75)) {
		t.Errorf("effective price = %s, want 12.75", wraps.EffectivePrice())
	}
	if !wraps.EffectiveCarbon().Equal(decimal.NewFromFloat(0.3)) {
		t.Errorf("effective carbon = %s, want 0.3", wraps.EffectiveCarbon())
	}

	milk := products[1]
	if milk.DynamicPrice.Valid || milk.CarbonScore.Valid {
		t.Error("missing optional fields should stay unset")
	}
	if !milk.EffectivePrice().Equal(decimal.NewFromFloat(3.2)) {
		t.Errorf("effective price = %s, want base price 3.2", milk.EffectivePrice())
	}
	if !milk.IsPerishable {
		t.Error("expected perishable flag")
	}
}

func TestParseYAMLCatalog_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "products: [",
		"missing name":   "products:\n  - id: 1\n    base_price: 2\n",
		"negative price": "products:\n  - id: 1\n    name: X\n    base_price: -2\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseYAMLCatalog([]byte(doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadYAMLCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	repo, err := LoadYAMLCatalog(path)
	if err != nil {
		t.Fatalf("LoadYAMLCatalog() error = %v", err)
	}

	p, err := repo.GetByID(context.Background(), 11)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if p.Name != "Oat Milk" {
		t.Errorf("Name = %q, want Oat Milk", p.Name)
	}

	if _, err := LoadYAMLCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
