package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/funfair/waitpredictor/internal/predictor"
	"github.com/funfair/waitpredictor/models"
)

// DashboardService runs the prediction pipeline for one selection
type DashboardService interface {
	Predict(ctx context.Context, input models.PredictionInput) (*models.Dashboard, error)
	Catalog() *models.RideCatalog
}

// PredictHandler handles HTTP requests for wait-time predictions and the selector options
type PredictHandler struct {
	service DashboardService
}

// NewPredictHandler creates a new handler with the given service
func NewPredictHandler(service DashboardService) *PredictHandler {
	return &PredictHandler{service: service}
}

// ErrorResponse is the JSON error response structure
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RidesResponse is the JSON response for GET /api/rides
type RidesResponse struct {
	Rides []models.RideCatalogEntry `json:"rides"`
	Count int                       `json:"count"`
}

// HourRange describes the time-of-day slider
type HourRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// OptionsResponse is the JSON response for GET /api/options
type OptionsResponse struct {
	Rides    []string         `json:"rides"`
	Weathers []models.Weather `json:"weathers"`
	DayTypes []models.DayType `json:"dayTypes"`
	Hours    HourRange        `json:"hours"`
}

// GetRides handles GET /api/rides
func (h *PredictHandler) GetRides(w http.ResponseWriter, r *http.Request) {
	rides := h.service.Catalog().Entries()

	// Static for the lifetime of the process
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, RidesResponse{
		Rides: rides,
		Count: len(rides),
	})
}

// GetOptions handles GET /api/options
// Returns every selector choice the dashboard offers
func (h *PredictHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, OptionsResponse{
		Rides:    h.service.Catalog().Names(),
		Weathers: models.AllWeathers(),
		DayTypes: models.AllDayTypes(),
		Hours: HourRange{
			Min:     models.MinHour,
			Max:     models.MaxHour,
			Default: models.DefaultHour,
		},
	})
}

// Predict handles POST /api/predict
// Body: {"ride": "Ferris Wheel", "hour": 12, "weather": "Sunny", "dayType": "Weekday"}
// A missing model yields 200 with modelAvailable=false and a notice
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.PredictionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Details: map[string]interface{}{
				"internal": err.Error(),
			},
		})
		return
	}

	dashboard, err := h.service.Predict(ctx, input)
	if err != nil {
		if errors.Is(err, predictor.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "Invalid prediction input",
				Details: map[string]interface{}{
					"reason": err.Error(),
				},
			})
			return
		}

		log.Printf("Prediction failed for %+v: %v", input, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to predict wait time",
			Details: map[string]interface{}{
				"internal": err.Error(),
			},
		})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, dashboard)
}

// writeJSON marshals body before writing headers; an encoding failure is sent as a 500
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
