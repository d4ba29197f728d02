package repository

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

// catalogFile is the on-disk YAML layout of a catalog.
type catalogFile struct {
	Products []productEntry `yaml:"products"`
}

type productEntry struct {
	ID           int64    `yaml:"id"`
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	BasePrice    float64  `yaml:"base_price"`
	DynamicPrice *float64 `yaml:"dynamic_price"`
	CarbonScore  *float64 `yaml:"carbon_score"`
	IsPerishable bool     `yaml:"perishable"`
	Image        string   `yaml:"image"`
}

// ParseYAMLCatalog decodes a YAML catalog document.
func ParseYAMLCatalog(data []byte) ([]models.Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	products := make([]models.Product, 0, len(file.Products))
	for i, entry := range file.Products {
		if entry.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		if entry.BasePrice < 0 {
			return nil, fmt.Errorf("product %q: base_price must not be negative", entry.Name)
		}

		p := models.Product{
			ID:           entry.ID,
			Name:         entry.Name,
			Category:     entry.Category,
			BasePrice:    decimal.NewFromFloat(entry.BasePrice),
			IsPerishable: entry.IsPerishable,
			Image:        entry.Image,
		}
		if entry.DynamicPrice != nil {
			p.DynamicPrice = models.Price(*entry.DynamicPrice)
		}
		if entry.CarbonScore != nil {
			p.CarbonScore = models.Price(*entry.CarbonScore)
		}
		products = append(products, p)
	}

	return products, nil
}

// LoadYAMLCatalog reads a YAML catalog file into an in-memory repository.
func LoadYAMLCatalog(path string) (*InMemoryProductRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	products, err := ParseYAMLCatalog(data)
	if err != nil {
		return nil, err
	}

	return NewInMemoryProductRepository(products), nil
}
