package handlers

import (
	"context"
	"net/http"
	"time"
)

// ModelStatus reports whether the wait-time model is loaded
type ModelStatus interface {
	Available() bool
	Path() string
	Version() string
}

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health checks
type HealthHandler struct {
	model ModelStatus
	db    Pinger
}

// NewHealthHandler creates a health handler. db may be nil when no prediction log is configured.
func NewHealthHandler(model ModelStatus, db Pinger) *HealthHandler {
	return &HealthHandler{model: model, db: db}
}

// HealthResponse is the JSON response for GET /health
type HealthResponse struct {
	Status       string    `json:"status"`
	Model        string    `json:"model"`
	ModelPath    string    `json:"modelPath"`
	ModelVersion string    `json:"modelVersion,omitempty"`
	Database     string    `json:"database"`
	Timestamp    time.Time `json:"timestamp"`
	Error        string    `json:"error,omitempty"`
}

// Model and database states
const (
	ModelLoaded          = "loaded"
	ModelAbsent          = "absent"
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
	DatabaseDisabled     = "disabled"
)

// GetHealth handles GET /health
// An absent model degrades the service but does not fail the check: the dashboard still serves a notice
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Model:     ModelLoaded,
		ModelPath: h.model.Path(),
		Database:  DatabaseDisabled,
		Timestamp: time.Now().UTC(),
	}

	if h.model.Available() {
		resp.ModelVersion = h.model.Version()
	} else {
		resp.Status = "degraded"
		resp.Model = ModelAbsent
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			resp.Status = "error"
			resp.Database = DatabaseDisconnected
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = DatabaseConnected
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetHealthz handles GET /healthz
func (h *HealthHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
