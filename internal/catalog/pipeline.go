// Package catalog implements the storefront filter, sort and search pipeline.
//
// Everything here is pure: the same catalog and criteria always produce the
// same result and the input slice is never modified.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

// Apply filters products by c and returns them sorted by c.SortKey.
// The result is never nil.
func Apply(products []models.Product, c Criteria) []models.Product {
	// Casers and collators carry internal buffers, so each call gets its own.
	fold := cases.Fold()
	term := fold.String(c.SearchTerm)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(fold.String(p.Name), term) &&
			!strings.Contains(fold.String(p.Category), term) {
			continue
		}
		if c.Category != CategoryAll && p.Category != c.Category {
			continue
		}
		if !c.PriceRange.Contains(p.EffectivePrice()) {
			continue
		}
		if !c.CarbonRange.Contains(p.EffectiveCarbon()) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, c.SortKey)
	return out
}

func sortProducts(products []models.Product, key SortKey) {
	col := collate.New(language.English)

	slices.SortStableFunc(products, func(a, b models.Product) int {
		var n int
		switch key {
		case SortByPriceAsc:
			n = a.EffectivePrice().Cmp(b.EffectivePrice())
		case SortByPriceDesc:
			n = b.EffectivePrice().Cmp(a.EffectivePrice())
		case SortByCarbonAsc:
			n = a.EffectiveCarbon().Cmp(b.EffectiveCarbon())
		case SortByCarbonDesc:
			n = b.EffectiveCarbon().Cmp(a.EffectiveCarbon())
		}
		if n != 0 {
			return n
		}
		return col.CompareString(a.Name, b.Name)
	})
}

// DistinctCategories returns each category once, in first-seen order.
func DistinctCategories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
