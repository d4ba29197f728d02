package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ecosmart-shop/catalog-api/internal/service"
)

// AdminHandler serves the dashboard endpoints. Routes are expected to sit
// behind the API key middleware.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

func NewAdminHandler(service *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// Analytics handles GET /api/admin/analytics
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("failed to build analytics", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, overview, h.logger)
}

// InvalidateCatalog handles POST /api/admin/catalog/invalidate
func (h *AdminHandler) InvalidateCatalog(w http.ResponseWriter, r *http.Request) {
	dropped, err := h.service.InvalidateCatalog(r.Context())
	if err != nil {
		h.logger.Error("failed to invalidate catalog", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"invalidated": dropped}, h.logger)
}
