package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ecosmart-shop/catalog-api/internal/catalog"
	"github.com/ecosmart-shop/catalog-api/internal/models"
	"github.com/ecosmart-shop/catalog-api/internal/pricing"
	"github.com/ecosmart-shop/catalog-api/internal/recommend"
	"github.com/ecosmart-shop/catalog-api/internal/repository"
)

var (
	ErrEstimatorDisabled = errors.New("pricing estimator is disabled")
)

// ProductService handles business logic for products
type ProductService struct {
	repo      repository.ProductRepository
	estimator pricing.Estimator
	workers   int
	logger    *slog.Logger
}

// NewProductService creates a new product service. estimator may be nil, in
// which case enrichment and estimates are unavailable.
func NewProductService(repo repository.ProductRepository, estimator pricing.Estimator, workers int, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		estimator: estimator,
		workers:   workers,
		logger:    logger,
	}
}

// ListProducts returns the catalog filtered and sorted by criteria. With
// enrich set, prices and carbon scores come from the estimator first.
func (s *ProductService) ListProducts(ctx context.Context, criteria catalog.Criteria, enrich bool) ([]models.Product, error) {
	products, err := s.catalog(ctx, enrich)
	if err != nil {
		return nil, err
	}

	result := catalog.Apply(products, criteria)
	s.logger.Debug("catalog filtered",
		"search", criteria.SearchTerm,
		"category", criteria.Category,
		"sort", criteria.SortKey,
		"matched", len(result),
		"total", len(products),
	)
	return result, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct categories for the category selector.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.DistinctCategories(products), nil
}

// Estimate asks the estimator for a single product's price and carbon score.
func (s *ProductService) Estimate(ctx context.Context, id int64) (pricing.Estimate, error) {
	if s.estimator == nil {
		return pricing.Estimate{}, ErrEstimatorDisabled
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return pricing.Estimate{}, err
	}
	return s.estimator.Estimate(ctx, *product)
}

// Recommend answers a free-text shopping query.
func (s *ProductService) Recommend(ctx context.Context, query string, limit int) (recommend.Result, error) {
	products, err := s.catalog(ctx, false)
	if err != nil {
		return recommend.Result{}, err
	}

	result := recommend.Recommend(products, query, limit)
	s.logger.Info("recommendations served",
		"query_id", result.QueryID,
		"results", len(result.Recommendations),
	)
	return result, nil
}

func (s *ProductService) catalog(ctx context.Context, enrich bool) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if !enrich {
		return products, nil
	}
	if s.estimator == nil {
		return nil, ErrEstimatorDisabled
	}
	return pricing.Enrich(ctx, s.estimator, products, s.workers)
}
