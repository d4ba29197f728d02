package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecosmart-shop/catalog-api/internal/service"
)

// RecommendRequest is the body of POST /api/recommend.
type RecommendRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// RecommendHandler serves the shopping assistant.
type RecommendHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

func NewRecommendHandler(service *service.ProductService, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{
		service: service,
		logger:  logger,
	}
}

// Recommend handles POST /api/recommend
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid recommend request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, http.StatusBadRequest, "query is required", h.logger)
		return
	}
	if req.Limit < 0 {
		WriteError(w, http.StatusBadRequest, "limit must not be negative", h.logger)
		return
	}

	result, err := h.service.Recommend(r.Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("failed to recommend products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}
