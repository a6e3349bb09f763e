// Package mlmodel loads the pre-trained wait-time model and exposes its
// batch prediction contract.
package mlmodel

import (
	"errors"

	"github.com/funfair/waitpredictor/internal/features"
)

// ErrModelUnavailable means no model could be loaded; callers skip prediction and show a notice
var ErrModelUnavailable = errors.New("wait-time model unavailable")

// DefaultPath is where the training notebook writes the artifact, relative to the working directory
const DefaultPath = "artifacts/wait_time_model.json"

// Model predicts one wait time (minutes) per row. Implementations must be safe
// for concurrent use once loaded.
type Model interface {
	Predict(rows []features.Row) ([]float64, error)
}
