package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/funfair/waitpredictor/models"
)

// PredictionLogRepository defines the interface for reading the prediction log
type PredictionLogRepository interface {
	RecentPredictions(ctx context.Context, limit int) ([]models.PredictionLogEntry, error)
}

// PredictionLogHandler handles HTTP requests for recently served predictions
type PredictionLogHandler struct {
	repo PredictionLogRepository
}

// NewPredictionLogHandler creates a new handler with the given repository
func NewPredictionLogHandler(repo PredictionLogRepository) *PredictionLogHandler {
	return &PredictionLogHandler{repo: repo}
}

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// GetRecent handles GET /api/predictions/recent
// Query params: limit (optional, 1..100, default 20)
func (h *PredictionLogHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit := defaultRecentLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxRecentLimit {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "limit must be an integer between 1 and 100",
				Details: map[string]interface{}{
					"limit": s,
				},
			})
			return
		}
		limit = n
	}

	entries, err := h.repo.RecentPredictions(ctx, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to retrieve predictions",
		})
		return
	}

	writeJSON(w, http.StatusOK, models.RecentPredictionsResponse{
		Predictions: entries,
		Count:       len(entries),
		LastChecked: time.Now().UTC(),
	})
}
