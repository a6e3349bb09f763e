// Package predictor runs the prediction pipeline behind the dashboard:
// encode, predict, classify, then the full-day trend for the chart.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/funfair/waitpredictor/internal/features"
	"github.com/funfair/waitpredictor/internal/mlmodel"
	"github.com/funfair/waitpredictor/models"
)

// ErrInvalidInput is returned when a selection is outside the dashboard's choices
var ErrInvalidInput = errors.New("invalid prediction input")

// ModelUnavailableNotice is shown instead of a prediction when no model is loaded
const ModelUnavailableNotice = "Model not found! Please run the training notebook first."

// ModelSource provides the loaded model or an error wrapping mlmodel.ErrModelUnavailable
type ModelSource interface {
	Load() (mlmodel.Model, error)
}

// PredictionRecorder stores served predictions
type PredictionRecorder interface {
	RecordPrediction(ctx context.Context, entry models.PredictionLogEntry) error
}

// Service handles one Predict action at a time; it holds no per-request state
type Service struct {
	source   ModelSource
	catalog  *models.RideCatalog
	recorder PredictionRecorder
	now      func() time.Time
}

// NewService creates the dashboard service. recorder may be nil.
func NewService(source ModelSource, catalog *models.RideCatalog, recorder PredictionRecorder) *Service {
	return &Service{
		source:   source,
		catalog:  catalog,
		recorder: recorder,
		now:      time.Now,
	}
}

// Catalog returns the rides the service can predict for
func (s *Service) Catalog() *models.RideCatalog {
	return s.catalog
}

// BuildRequest resolves a user selection into a model-facing request
func (s *Service) BuildRequest(input models.PredictionInput) (models.PredictionRequest, error) {
	rideID, ok := s.catalog.Resolve(input.Ride)
	if !ok {
		return models.PredictionRequest{}, fmt.Errorf("%w: unknown ride %q", ErrInvalidInput, input.Ride)
	}
	if !input.DayType.Valid() {
		return models.PredictionRequest{}, fmt.Errorf("%w: unknown day type %q", ErrInvalidInput, input.DayType)
	}

	req := models.PredictionRequest{
		RideID:    rideID,
		Weather:   input.Weather,
		HourOfDay: input.Hour,
		IsWeekend: input.DayType.IsWeekend(),
	}
	if err := req.Validate(); err != nil {
		return models.PredictionRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return req, nil
}

// Predict runs the full pipeline for one selection.
// A missing model is not an error: the dashboard comes back with ModelAvailable=false and a notice.
func (s *Service) Predict(ctx context.Context, input models.PredictionInput) (*models.Dashboard, error) {
	req, err := s.BuildRequest(input)
	if err != nil {
		return nil, err
	}

	model, err := s.source.Load()
	if err != nil {
		if errors.Is(err, mlmodel.ErrModelUnavailable) {
			return &models.Dashboard{ModelAvailable: false, Notice: ModelUnavailableNotice}, nil
		}
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	p := New(model)

	pred, err := p.PredictOne(features.EncodeRequest(req))
	if err != nil {
		return nil, err
	}
	result := models.NewPredictionResult(pred)

	trend, err := p.GenerateTrend(req.RideID, req.Weather, req.IsWeekend)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trend: %w", err)
	}

	chart := models.NewChart(req.Weather, input.DayType, req.HourOfDay)

	s.record(ctx, input.Ride, req, result)

	return &models.Dashboard{
		ModelAvailable: true,
		Ride:           input.Ride,
		Request:        &req,
		Result:         &result,
		Trend:          trend,
		Chart:          &chart,
	}, nil
}

func (s *Service) record(ctx context.Context, rideName string, req models.PredictionRequest, result models.PredictionResult) {
	if s.recorder == nil {
		return
	}

	entry := models.PredictionLogEntry{
		ID:          uuid.New().String(),
		RideID:      req.RideID,
		RideName:    rideName,
		Weather:     req.Weather,
		HourOfDay:   req.HourOfDay,
		IsWeekend:   req.IsWeekend,
		WaitMinutes: result.WaitMinutes,
		Status:      result.Status,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.recorder.RecordPrediction(ctx, entry); err != nil {
		log.Printf("Warning: failed to record prediction %s: %v", entry.ID, err)
	}
}
