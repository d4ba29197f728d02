package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

var (
	ErrUnknownSortKey = errors.New("unknown sort key")
	ErrInvertedRange  = errors.New("range minimum is greater than maximum")
	ErrNegativeBound  = errors.New("range bounds must not be negative")
)

// SortKey selects the ordering of a filtered catalog.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPriceAsc   SortKey = "price-asc"
	SortByPriceDesc  SortKey = "price-desc"
	SortByCarbonAsc  SortKey = "carbon-asc"
	SortByCarbonDesc SortKey = "carbon-desc"
)

// legacy storefront spellings
var sortAliases = map[string]SortKey{
	"price-low":   SortByPriceAsc,
	"price-high":  SortByPriceDesc,
	"carbon-low":  SortByCarbonAsc,
	"carbon-high": SortByCarbonDesc,
}

// ParseSortKey resolves a sort key. The empty string means name.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortByName, nil
	}
	if alias, ok := sortAliases[s]; ok {
		return alias, nil
	}
	key := SortKey(s)
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
	return key, nil
}

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByPriceAsc, SortByPriceDesc, SortByCarbonAsc, SortByCarbonDesc:
		return true
	}
	return false
}

// maxBound stands in for "no upper limit" on prices and carbon scores.
var maxBound = decimal.New(1, 18)

// Range is a closed interval [Min, Max].
type Range struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// NewRange builds a range from float bounds.
func NewRange(min, max float64) Range {
	return Range{Min: decimal.NewFromFloat(min), Max: decimal.NewFromFloat(max)}
}

// Unbounded covers every non-negative value.
func Unbounded() Range {
	return Range{Min: decimal.Zero, Max: maxBound}
}

// Contains reports whether v lies in the range, bounds included.
// An inverted range contains nothing.
func (r Range) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

func (r Range) validate(name string) error {
	if r.Min.IsNegative() || r.Max.IsNegative() {
		return fmt.Errorf("%s: %w", name, ErrNegativeBound)
	}
	if r.Min.GreaterThan(r.Max) {
		return fmt.Errorf("%s [%s, %s]: %w", name, r.Min, r.Max, ErrInvertedRange)
	}
	return nil
}

// Criteria is the set of user-selected constraints for one pipeline run.
type Criteria struct {
	SearchTerm  string  `json:"searchTerm"`
	Category    string  `json:"category"`
	PriceRange  Range   `json:"priceRange"`
	CarbonRange Range   `json:"carbonRange"`
	SortKey     SortKey `json:"sortKey"`
}

// NeutralCriteria keeps every product and sorts by name. It is also the
// "clear filters" state.
func NeutralCriteria() Criteria {
	return Criteria{
		Category:    CategoryAll,
		PriceRange:  Unbounded(),
		CarbonRange: Unbounded(),
		SortKey:     SortByName,
	}
}

// StorefrontDefaults mirrors the initial slider positions of the shop UI.
func StorefrontDefaults() Criteria {
	c := NeutralCriteria()
	c.PriceRange = NewRange(0, 100)
	c.CarbonRange = NewRange(0, 2)
	return c
}

// Validate rejects criteria that can only be a caller mistake.
// Apply itself never validates.
func (c Criteria) Validate() error {
	if !c.SortKey.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, c.SortKey)
	}
	if err := c.PriceRange.validate("price range"); err != nil {
		return err
	}
	return c.CarbonRange.validate("carbon range")
}

// Option mutates criteria under construction.
type Option func(*Criteria)

func WithSearch(term string) Option {
	return func(c *Criteria) { c.SearchTerm = strings.TrimSpace(term) }
}

// WithCategory filters on an exact category; empty means all.
func WithCategory(category string) Option {
	return func(c *Criteria) {
		if category == "" {
			category = CategoryAll
		}
		c.Category = category
	}
}

func WithPriceRange(r Range) Option {
	return func(c *Criteria) { c.PriceRange = r }
}

func WithCarbonRange(r Range) Option {
	return func(c *Criteria) { c.CarbonRange = r }
}

func WithSort(key SortKey) Option {
	return func(c *Criteria) { c.SortKey = key }
}

// NewCriteria starts from NeutralCriteria, applies opts and validates the result.
func NewCriteria(opts ...Option) (Criteria, error) {
	c := NeutralCriteria()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}
