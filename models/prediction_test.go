package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		wait int
		want Status
	}{
		{0, StatusFast},
		{14, StatusFast},
		{15, StatusModerate},
		{44, StatusModerate},
		{45, StatusLong},
		{120, StatusLong},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.wait), "Classify(%d)", tc.wait)
	}
}

func TestStatusLabelsAndColors(t *testing.T) {
	assert.Equal(t, "Fast Lane!", StatusFast.Label())
	assert.Equal(t, "green", StatusFast.Color())
	assert.Equal(t, "Moderate Wait", StatusModerate.Label())
	assert.Equal(t, "orange", StatusModerate.Color())
	assert.Equal(t, "Long Queue", StatusLong.Label())
	assert.Equal(t, "red", StatusLong.Color())
	assert.Empty(t, Status("bogus").Label())
}

func TestNewPredictionResult(t *testing.T) {
	r := NewPredictionResult(44.9)
	assert.Equal(t, 44, r.WaitMinutes, "wait time is truncated, not rounded")
	assert.Equal(t, StatusModerate, r.Status)
	assert.Equal(t, "Moderate Wait", r.Label)
	assert.Equal(t, "orange", r.Color)

	assert.Equal(t, 0, NewPredictionResult(-3.2).WaitMinutes)
	assert.Equal(t, 0, NewPredictionResult(math.NaN()).WaitMinutes)
	assert.Equal(t, StatusLong, NewPredictionResult(math.Inf(1)).Status)
}

func TestPredictionRequestValidate(t *testing.T) {
	valid := PredictionRequest{RideID: "R_002", Weather: WeatherSunny, HourOfDay: 12}
	require.NoError(t, valid.Validate())

	for _, h := range []int{MinHour, MaxHour} {
		r := valid
		r.HourOfDay = h
		assert.NoError(t, r.Validate(), "hour %d", h)
	}

	for _, h := range []int{9, 23} {
		r := valid
		r.HourOfDay = h
		assert.Error(t, r.Validate(), "hour %d", h)
	}

	r := valid
	r.Weather = "sunny"
	assert.Error(t, r.Validate(), "weather spelling must match training data")

	r = valid
	r.RideID = ""
	assert.Error(t, r.Validate())
}

func TestDayType(t *testing.T) {
	assert.True(t, DayTypeWeekend.IsWeekend())
	assert.False(t, DayTypeWeekday.IsWeekend())
	assert.False(t, DayType("Holiday").Valid())
}

func TestNewChart(t *testing.T) {
	c := NewChart(WeatherRainy, DayTypeWeekend, 17)
	assert.Equal(t, "Wait Time Curve (Rainy, Weekend)", c.Title)
	assert.Equal(t, 17, c.SelectedHour)
	assert.Equal(t, "Hour of Day", c.XAxisTitle)
	assert.Equal(t, "Wait Time (min)", c.YAxisTitle)
}
