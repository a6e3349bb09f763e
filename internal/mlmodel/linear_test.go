package mlmodel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funfair/waitpredictor/internal/features"
	"github.com/funfair/waitpredictor/models"
)

const testArtifact = `{
  "format": "linear-onehot/v1",
  "features": ["ride_id", "weather", "hour_of_day", "is_weekend"],
  "intercept": 5,
  "categorical": {
    "ride_id": {"R_001": 30, "R_002": 8},
    "weather": {"Sunny": 10, "Rainy": -5}
  },
  "numeric": {"hour_of_day": 0.5, "is_weekend": 12},
  "hour_profile": {"12": 3}
}`

func TestLinearModelPredict(t *testing.T) {
	m, err := ParseArtifact([]byte(testArtifact))
	require.NoError(t, err)

	preds, err := m.Predict([]features.Row{
		features.Encode("R_002", models.WeatherSunny, 12, false),
		features.Encode("R_001", models.WeatherRainy, 10, true),
	})
	require.NoError(t, err)
	require.Len(t, preds, 2)

	// 5 + 8 + 10 + 0.5*12 + 0 + 3
	assert.InDelta(t, 32.0, preds[0], 1e-9)
	// 5 + 30 - 5 + 0.5*10 + 12 + 0
	assert.InDelta(t, 47.0, preds[1], 1e-9)
}

func TestLinearModelUnknownCategory(t *testing.T) {
	m, err := ParseArtifact([]byte(testArtifact))
	require.NoError(t, err)

	_, err = m.Predict([]features.Row{features.Encode("R_999", models.WeatherSunny, 12, false)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown ride_id category "R_999"`)

	_, err = m.Predict([]features.Row{features.Encode("R_001", models.WeatherCloudy, 12, false)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather")
}

func TestLinearModelRejectsNonBinaryWeekend(t *testing.T) {
	m, err := ParseArtifact([]byte(testArtifact))
	require.NoError(t, err)

	_, err = m.Predict([]features.Row{{RideID: "R_001", Weather: "Sunny", HourOfDay: 12, IsWeekend: 2}})
	assert.Error(t, err)
}

func TestParseArtifactSchemaMismatch(t *testing.T) {
	reordered := strings.Replace(testArtifact,
		`["ride_id", "weather", "hour_of_day", "is_weekend"]`,
		`["weather", "ride_id", "hour_of_day", "is_weekend"]`, 1)

	_, err := ParseArtifact([]byte(reordered))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature schema mismatch")
}

func TestParseArtifactRejects(t *testing.T) {
	cases := map[string]string{
		"bad json":          `{"format":`,
		"unknown format":    strings.Replace(testArtifact, "linear-onehot/v1", "pickle", 1),
		"missing weather":   strings.Replace(testArtifact, `"weather": {"Sunny": 10, "Rainy": -5}`, `"weather": {}`, 1),
		"extra categorical": strings.Replace(testArtifact, `"weather": {`, `"park": {"A": 1}, "weather": {`, 1),
		"extra numeric":     strings.Replace(testArtifact, `"is_weekend": 12`, `"is_weekend": 12, "temperature": 1`, 1),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestShippedArtifactLoads(t *testing.T) {
	path := filepath.Join("..", "..", DefaultPath)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("shipped artifact not found at %s", path)
	}

	m, err := OpenArtifact(path)
	require.NoError(t, err)

	// Every catalog ride and weather must be a trained category
	for _, ride := range models.DefaultCatalog().Entries() {
		for _, w := range models.AllWeathers() {
			_, err := m.Predict([]features.Row{features.Encode(ride.RideID, w, models.DefaultHour, false)})
			assert.NoError(t, err, "%s %s", ride.DisplayName, w)
		}
	}
}
