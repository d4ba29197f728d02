package pricing

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ecosmart-shop/catalog-api/internal/models"
)

// DefaultWorkers bounds concurrent Estimate calls when workers <= 0.
const DefaultWorkers = 4

// Enrich returns a copy of products with DynamicPrice and CarbonScore taken
// from est. Order is preserved and the input is left untouched. The first
// failing estimate cancels the rest.
func Enrich(ctx context.Context, est Estimator, products []models.Product, workers int) ([]models.Product, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	out := slices.Clone(products)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range out {
		i := i // per-iteration copy; required for go < 1.22 loop semantics
		g.Go(func() error {
			e, err := est.Estimate(ctx, out[i])
			if err != nil {
				return fmt.Errorf("estimate product %d: %w", out[i].ID, err)
			}
			out[i].DynamicPrice = decimal.NewNullDecimal(e.DynamicPrice)
			out[i].CarbonScore = decimal.NewNullDecimal(e.CarbonScore)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
