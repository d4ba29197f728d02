package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	source string
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler. source names the catalog
// provider in use.
func NewHealthHandler(source string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		source: source,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	CatalogSource string    `json:"catalogSource"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Version:       Version,
		CatalogSource: h.source,
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
