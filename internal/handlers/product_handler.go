package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ecosmart-shop/catalog-api/internal/catalog"
	"github.com/ecosmart-shop/catalog-api/internal/repository"
	"github.com/ecosmart-shop/catalog-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/product
// Query parameters narrow and order the catalog:
// q, category, minPrice, maxPrice, minCarbon, maxCarbon, sort, enrich.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	criteria, err := parseCriteria(query)
	if err != nil {
		h.logger.Warn("invalid product filter", "query", r.URL.RawQuery, "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	enrich := false
	if v := query.Get("enrich"); v != "" {
		if enrich, err = strconv.ParseBool(v); err != nil {
			WriteError(w, http.StatusBadRequest, "enrich must be a boolean", h.logger)
			return
		}
	}

	products, err := h.service.ListProducts(ctx, criteria, enrich)
	if err != nil {
		if errors.Is(err, service.ErrEstimatorDisabled) {
			WriteError(w, http.StatusServiceUnavailable, "Pricing estimator is disabled", h.logger)
			return
		}
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/product/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, id, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// ListCategories handles GET /api/category
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string][]string{"categories": categories}, h.logger)
}

// EstimateProduct handles GET /api/product/{productId}/estimate
func (h *ProductHandler) EstimateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	estimate, err := h.service.Estimate(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEstimatorDisabled) {
			WriteError(w, http.StatusServiceUnavailable, "Pricing estimator is disabled", h.logger)
			return
		}
		h.writeLookupError(w, id, err)
		return
	}

	WriteJSON(w, http.StatusOK, estimate, h.logger)
}

// productID parses the productId path parameter, writing a 400 on failure.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productId")

	// type: integer, format: int64
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", raw, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) writeLookupError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, repository.ErrProductNotFound) {
		h.logger.Info("product not found", "productId", id)
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	h.logger.Error("failed to get product", "productId", id, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
}

// parseCriteria builds validated filter criteria from query parameters.
// Missing bounds leave that side of the range open.
func parseCriteria(q url.Values) (catalog.Criteria, error) {
	sortKey, err := catalog.ParseSortKey(q.Get("sort"))
	if err != nil {
		return catalog.Criteria{}, err
	}

	price, err := parseRange(q, "minPrice", "maxPrice")
	if err != nil {
		return catalog.Criteria{}, err
	}
	carbon, err := parseRange(q, "minCarbon", "maxCarbon")
	if err != nil {
		return catalog.Criteria{}, err
	}

	return catalog.NewCriteria(
		catalog.WithSearch(q.Get("q")),
		catalog.WithCategory(q.Get("category")),
		catalog.WithPriceRange(price),
		catalog.WithCarbonRange(carbon),
		catalog.WithSort(sortKey),
	)
}

func parseRange(q url.Values, minKey, maxKey string) (catalog.Range, error) {
	r := catalog.Unbounded()
	for _, bound := range []struct {
		key string
		dst *decimal.Decimal
	}{{minKey, &r.Min}, {maxKey, &r.Max}} {
		raw := q.Get(bound.key)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Range{}, fmt.Errorf("%s must be a number", bound.key)
		}
		*bound.dst = v
	}
	return r, nil
}
