package predictor

import (
	"errors"
	"fmt"
	"math"

	"github.com/funfair/waitpredictor/internal/features"
	"github.com/funfair/waitpredictor/internal/mlmodel"
)

// ErrPredictionFailed wraps any error raised by the model for a request
var ErrPredictionFailed = errors.New("prediction failed")

// Predictor runs encoded rows through a loaded model
type Predictor struct {
	model mlmodel.Model
}

// New creates a predictor. The model must be present; checking for absence is the caller's job.
func New(model mlmodel.Model) *Predictor {
	return &Predictor{model: model}
}

// PredictMany runs one batch call and returns one value per row, in row order
func (p *Predictor) PredictMany(rows []features.Row) ([]float64, error) {
	if len(rows) == 0 {
		return []float64{}, nil
	}

	preds, err := p.model.Predict(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	if len(preds) != len(rows) {
		return nil, fmt.Errorf("%w: model returned %d values for %d rows", ErrPredictionFailed, len(preds), len(rows))
	}
	for i, v := range preds {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite prediction for row %d", ErrPredictionFailed, i)
		}
	}
	return preds, nil
}

// PredictOne predicts a single row
func (p *Predictor) PredictOne(row features.Row) (float64, error) {
	preds, err := p.PredictMany([]features.Row{row})
	if err != nil {
		return 0, err
	}
	return preds[0], nil
}
