// Package recommend answers free-text shopping queries from the catalog.
package recommend

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/ecosmart-shop/catalog-api/internal/catalog"
	"github.com/ecosmart-shop/catalog-api/internal/models"
)

const (
	DefaultLimit = 3
	MaxLimit     = 20
)

var priceCapPattern = regexp.MustCompile(`(?:under|below|less than)\s*\$?\s*(\d+(?:\.\d+)?)`)

// words that carry no product meaning in this shop
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "any": true, "are": true, "for": true,
	"find": true, "get": true, "i": true, "me": true, "need": true, "of": true,
	"or": true, "show": true, "some": true, "the": true, "to": true, "want": true,
	"with": true, "item": true, "product": true, "thing": true, "eco": true,
	"friendly": true, "green": true, "sustainable": true, "low": true, "carbon": true,
}

type Recommendation struct {
	Product   models.Product `json:"product"`
	Relevance float64        `json:"relevance"`
}

type Result struct {
	QueryID         string           `json:"queryId"`
	Query           string           `json:"query"`
	PriceCap        *decimal.Decimal `json:"priceCap,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommend ranks products against a free-text query such as
// "organic fruit under $5". Products matching more query words rank higher;
// ties go to the lower carbon score, then name. A query with no meaningful
// words returns the lowest-carbon products under the price cap.
func Recommend(products []models.Product, query string, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	text := cases.Fold().String(query)
	criteria := catalog.NeutralCriteria()
	criteria.SortKey = catalog.SortByCarbonAsc

	result := Result{QueryID: uuid.NewString(), Query: query, Recommendations: []Recommendation{}}

	if m := priceCapPattern.FindStringSubmatch(text); m != nil {
		if capValue, err := decimal.NewFromString(m[1]); err == nil {
			result.PriceCap = &capValue
			criteria.PriceRange = catalog.Range{Min: decimal.Zero, Max: capValue}
		}
		text = strings.Replace(text, m[0], " ", 1)
	}

	tokens := tokenize(text)
	fold := cases.Fold()

	for _, p := range catalog.Apply(products, criteria) {
		relevance := 1.0
		if len(tokens) > 0 {
			haystack := fold.String(p.Name + " " + p.Category)
			matched := 0
			for _, tok := range tokens {
				if strings.Contains(haystack, tok) {
					matched++
				}
			}
			if matched == 0 {
				continue
			}
			relevance = math.Round(float64(matched)/float64(len(tokens))*100) / 100
		}
		result.Recommendations = append(result.Recommendations, Recommendation{Product: p, Relevance: relevance})
	}

	// stable: carbon then name order from Apply survives within equal relevance
	slices.SortStableFunc(result.Recommendations, func(a, b Recommendation) int {
		switch {
		case a.Relevance > b.Relevance:
			return -1
		case a.Relevance < b.Relevance:
			return 1
		}
		return 0
	})

	if len(result.Recommendations) > limit {
		result.Recommendations = result.Recommendations[:limit]
	}
	return result
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		// crude plural folding so "bananas" and "banana" meet
		if len(f) > 3 && strings.HasSuffix(f, "s") {
			f = strings.TrimSuffix(f, "s")
		}
		if stopWords[f] || slices.Contains(tokens, f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
