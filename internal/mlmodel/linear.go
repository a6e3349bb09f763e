package mlmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/funfair/waitpredictor/internal/features"
)

// FormatLinearOneHot is a one-hot encoder followed by a linear regressor, exported by the training notebook
const FormatLinearOneHot = "linear-onehot/v1"

// LinearArtifact is the serialized form of a one-hot + linear regression pipeline.
//
//	prediction = intercept
//	           + categorical["ride_id"][row.ride_id]
//	           + categorical["weather"][row.weather]
//	           + numeric["hour_of_day"] * row.hour_of_day
//	           + numeric["is_weekend"] * row.is_weekend
//	           + hour_profile[row.hour_of_day]
type LinearArtifact struct {
	Format      string                        `json:"format"`
	Name        string                        `json:"name,omitempty"`
	Version     string                        `json:"version,omitempty"`
	TrainedAt   string                        `json:"trained_at,omitempty"`
	Features    []string                      `json:"features"`
	Intercept   float64                       `json:"intercept"`
	Categorical map[string]map[string]float64 `json:"categorical"`
	Numeric     map[string]float64            `json:"numeric"`
	HourProfile map[int]float64               `json:"hour_profile,omitempty"`
}

// LinearModel evaluates a LinearArtifact. It is read-only after construction.
type LinearModel struct {
	artifact LinearArtifact
}

// OpenArtifact reads and validates the artifact at path
func OpenArtifact(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	m, err := ParseArtifact(data)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ParseArtifact decodes and validates a serialized artifact
func ParseArtifact(data []byte) (*LinearModel, error) {
	var a LinearArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &LinearModel{artifact: a}, nil
}

// Validate checks that the artifact was trained on the columns this service encodes
func (a *LinearArtifact) Validate() error {
	if a.Format != FormatLinearOneHot {
		return fmt.Errorf("unsupported model format %q", a.Format)
	}
	if !slices.Equal(a.Features, features.Columns) {
		return fmt.Errorf("feature schema mismatch: artifact has %v, encoder emits %v", a.Features, features.Columns)
	}
	for _, col := range []string{features.ColumnRideID, features.ColumnWeather} {
		if len(a.Categorical[col]) == 0 {
			return fmt.Errorf("missing categorical coefficients for %s", col)
		}
	}
	for col := range a.Categorical {
		if col != features.ColumnRideID && col != features.ColumnWeather {
			return fmt.Errorf("unexpected categorical column %q", col)
		}
	}
	for col := range a.Numeric {
		if col != features.ColumnHourOfDay && col != features.ColumnIsWeekend {
			return fmt.Errorf("unexpected numeric column %q", col)
		}
	}
	return nil
}

// Artifact returns the model's metadata and coefficients
func (m *LinearModel) Artifact() LinearArtifact {
	return m.artifact
}

// Predict returns one value per row, in row order
func (m *LinearModel) Predict(rows []features.Row) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		v, err := m.predictRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (m *LinearModel) predictRow(row features.Row) (float64, error) {
	a := &m.artifact

	rideCoef, ok := a.Categorical[features.ColumnRideID][row.RideID]
	if !ok {
		return 0, fmt.Errorf("unknown %s category %q", features.ColumnRideID, row.RideID)
	}
	weatherCoef, ok := a.Categorical[features.ColumnWeather][row.Weather]
	if !ok {
		return 0, fmt.Errorf("unknown %s category %q", features.ColumnWeather, row.Weather)
	}
	if row.IsWeekend != 0 && row.IsWeekend != 1 {
		return 0, errors.New("is_weekend must be 0 or 1")
	}

	y := a.Intercept + rideCoef + weatherCoef
	y += a.Numeric[features.ColumnHourOfDay] * float64(row.HourOfDay)
	y += a.Numeric[features.ColumnIsWeekend] * float64(row.IsWeekend)
	y += a.HourProfile[row.HourOfDay]
	return y, nil
}
