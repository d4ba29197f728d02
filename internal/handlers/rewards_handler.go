package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecosmart-shop/catalog-api/internal/rewards"
	"github.com/go-chi/chi/v5"
)

// RewardsHandler exposes per-user eco points.
type RewardsHandler struct {
	ledger *rewards.Ledger
	logger *slog.Logger
}

func NewRewardsHandler(ledger *rewards.Ledger, logger *slog.Logger) *RewardsHandler {
	return &RewardsHandler{
		ledger: ledger,
		logger: logger,
	}
}

// GetSummary handles GET /api/rewards/{userId}
func (h *RewardsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "userId")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("invalid user ID format", "userId", raw, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	summary, err := h.ledger.Summary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, rewards.ErrUserNotFound) {
			WriteError(w, http.StatusNotFound, "User not found", h.logger)
			return
		}
		h.logger.Error("failed to load rewards", "userId", userID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, summary, h.logger)
}
