package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
// GetAll returns products ordered by ID.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	index    map[int64]int
}

// NewInMemoryProductRepository creates a repository holding the given products.
func NewInMemoryProductRepository(products []models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{}
	r.Replace(products)
	return r
}

// NewSeededProductRepository creates a repository with the storefront's demo catalog.
func NewSeededProductRepository() *InMemoryProductRepository {
	return NewInMemoryProductRepository(SeedProducts())
}

// SeedProducts returns the demo catalog shown by the storefront.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Organic Apples", Category: "Fruits", BasePrice: decimal.NewFromFloat(4.99), DynamicPrice: models.Price(4.49), CarbonScore: models.Price(0.2), IsPerishable: true, Image: "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=300"},
		{ID: 2, Name: "Eco-Friendly Water Bottle", Category: "Accessories", BasePrice: decimal.NewFromFloat(19.99), DynamicPrice: models.Price(18.99), CarbonScore: models.Price(0.8), Image: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=300"},
		{ID: 3, Name: "Organic Bananas", Category: "Fruits", BasePrice: decimal.NewFromFloat(3.49), DynamicPrice: models.Price(2.99), CarbonScore: models.Price(0.3), IsPerishable: true, Image: "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=300"},
		{ID: 4, Name: "Bamboo Toothbrush", Category: "Personal Care", BasePrice: decimal.NewFromFloat(8.99), DynamicPrice: models.Price(8.99), CarbonScore: models.Price(0.1), Image: "https://images.unsplash.com/photo-1607613009820-a29f7bb81c04?w=300"},
		{ID: 5, Name: "Reusable Shopping Bag", Category: "Accessories", BasePrice: decimal.NewFromFloat(12.99), DynamicPrice: models.Price(11.99), CarbonScore: models.Price(0.4), Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300"},
		{ID: 6, Name: "Solar Phone Charger", Category: "Electronics", BasePrice: decimal.NewFromFloat(49.99), DynamicPrice: models.Price(45.99), CarbonScore: models.Price(1.2), Image: "https://images.unsplash.com/photo-1593642532842-98d0fd5ebc1a?w=300"},
	}
}

// Replace swaps the whole catalog. Later duplicates of an ID win.
func (r *InMemoryProductRepository) Replace(products []models.Product) {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	sorted := make([]models.Product, 0, len(byID))
	for _, p := range byID {
		sorted = append(sorted, p)
	}
	slices.SortFunc(sorted, func(a, b models.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	index := make(map[int64]int, len(sorted))
	for i, p := range sorted {
		index[p.ID] = i
	}

	r.mu.Lock()
	r.products = sorted
	r.index = index
	r.mu.Unlock()
}

// GetAll returns a copy of all products
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.products), nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}
