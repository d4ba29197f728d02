package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

func TestInMemoryProductRepository_GetAll(t *testing.T) {
	repo := NewSeededProductRepository()

	products, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}

	if len(products) != 6 {
		t.Fatalf("expected 6 products, got %d", len(products))
	}

	for i, p := range products {
		if p.ID != int64(i+1) {
			t.Errorf("products[%d].ID = %d, want %d", i, p.ID, i+1)
		}
	}
}

func TestInMemoryProductRepository_GetAllReturnsCopy(t *testing.T) {
	repo := NewSeededProductRepository()
	ctx := context.Background()

	products, _ := repo.GetAll(ctx)
	products[0].Name = "changed"

	again, _ := repo.GetAll(ctx)
	if again[0].Name != "Organic Apples" {
		t.Errorf("repository state was mutated through GetAll result: %q", again[0].Name)
	}
}

func TestInMemoryProductRepository_GetByID(t *testing.T) {
	repo := NewSeededProductRepository()

	testCases := []struct {
		id       int64
		name     string
		category string
	}{
		{1, "Organic Apples", "Fruits"},
		{4, "Bamboo Toothbrush", "Personal Care"},
		{6, "Solar Phone Charger", "Electronics"},
	}

	for _, tc := range testCases {
		product, err := repo.GetByID(context.Background(), tc.id)
		if err != nil {
			t.Fatalf("GetByID(%d) error = %v", tc.id, err)
		}
		if product.Name != tc.name || product.Category != tc.category {
			t.Errorf("GetByID(%d) = %s/%s, want %s/%s", tc.id, product.Name, product.Category, tc.name, tc.category)
		}
	}

	if _, err := repo.GetByID(context.Background(), 999); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrProductNotFound", err)
	}
}

func TestInMemoryProductRepository_Replace(t *testing.T) {
	repo := NewInMemoryProductRepository(nil)

	repo.Replace([]models.Product{
		{ID: 9, Name: "Jute Rug", Category: "Home", BasePrice: decimal.NewFromInt(40)},
		{ID: 2, Name: "Cork Mat", Category: "Home", BasePrice: decimal.NewFromInt(15)},
		{ID: 9, Name: "Jute Rug XL", Category: "Home", BasePrice: decimal.NewFromInt(60)},
	})

	products, _ := repo.GetAll(context.Background())
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != 2 || products[1].ID != 9 {
		t.Errorf("products not ordered by ID: %d, %d", products[0].ID, products[1].ID)
	}
	if products[1].Name != "Jute Rug XL" {
		t.Errorf("later duplicate should win, got %q", products[1].Name)
	}
}
