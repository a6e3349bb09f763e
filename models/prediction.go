package models

import (
	"errors"
	"fmt"
	"math"
)

// Weather is a weather condition as spelled in the training data
type Weather string

const (
	WeatherSunny  Weather = "Sunny"
	WeatherCloudy Weather = "Cloudy"
	WeatherRainy  Weather = "Rainy"
)

// AllWeathers returns the supported weather conditions in selector order
func AllWeathers() []Weather {
	return []Weather{WeatherSunny, WeatherCloudy, WeatherRainy}
}

// Valid reports whether w is one of the trained weather categories
func (w Weather) Valid() bool {
	switch w {
	case WeatherSunny, WeatherCloudy, WeatherRainy:
		return true
	}
	return false
}

// DayType distinguishes weekdays from weekends
type DayType string

const (
	DayTypeWeekday DayType = "Weekday"
	DayTypeWeekend DayType = "Weekend"
)

// AllDayTypes returns the supported day types in selector order
func AllDayTypes() []DayType {
	return []DayType{DayTypeWeekday, DayTypeWeekend}
}

// Valid reports whether d is a known day type
func (d DayType) Valid() bool {
	return d == DayTypeWeekday || d == DayTypeWeekend
}

// IsWeekend reports whether d is a weekend day
func (d DayType) IsWeekend() bool {
	return d == DayTypeWeekend
}

// Opening hours covered by the model (inclusive)
const (
	MinHour     = 10
	MaxHour     = 22
	DefaultHour = 12
)

// PredictionInput is what the user selects on the dashboard
type PredictionInput struct {
	Ride    string  `json:"ride"`
	Hour    int     `json:"hour"`
	Weather Weather `json:"weather"`
	DayType DayType `json:"dayType"`
}

// PredictionRequest is the resolved, model-facing form of a single prediction action
type PredictionRequest struct {
	RideID    string  `json:"rideId"`
	Weather   Weather `json:"weather"`
	HourOfDay int     `json:"hourOfDay"`
	IsWeekend bool    `json:"isWeekend"`
}

// Validate checks the request against the model's input domain
func (r PredictionRequest) Validate() error {
	if r.RideID == "" {
		return errors.New("ride_id is required")
	}
	if !r.Weather.Valid() {
		return fmt.Errorf("unknown weather %q", r.Weather)
	}
	if r.HourOfDay < MinHour || r.HourOfDay > MaxHour {
		return fmt.Errorf("hour_of_day %d out of range: must be between %d and %d", r.HourOfDay, MinHour, MaxHour)
	}
	return nil
}

// Status is the queue tier shown next to a prediction
type Status string

const (
	StatusFast     Status = "fast"
	StatusModerate Status = "moderate"
	StatusLong     Status = "long"
)

// Status thresholds in minutes; boundary values belong to the higher tier
const (
	FastThresholdMinutes = 15
	LongThresholdMinutes = 45
)

// Classify returns the status tier for a wait time
func Classify(waitMinutes int) Status {
	if waitMinutes < FastThresholdMinutes {
		return StatusFast
	}
	if waitMinutes < LongThresholdMinutes {
		return StatusModerate
	}
	return StatusLong
}

// Label returns the dashboard caption for a status
func (s Status) Label() string {
	switch s {
	case StatusFast:
		return "Fast Lane!"
	case StatusModerate:
		return "Moderate Wait"
	case StatusLong:
		return "Long Queue"
	}
	return ""
}

// Color returns the display colour for a status
func (s Status) Color() string {
	switch s {
	case StatusFast:
		return "green"
	case StatusModerate:
		return "orange"
	case StatusLong:
		return "red"
	}
	return ""
}

// PredictionResult is the single-point prediction for the selected hour
type PredictionResult struct {
	WaitMinutes int    `json:"waitMinutes"`
	Status      Status `json:"status"`
	Label       string `json:"label"`
	Color       string `json:"color"`
}

// NewPredictionResult truncates a raw model output to whole minutes and classifies it.
// Negative and non-finite outputs are clamped to zero.
func NewPredictionResult(prediction float64) PredictionResult {
	wait := 0
	if !math.IsNaN(prediction) && prediction > 0 {
		if prediction > math.MaxInt32 {
			wait = math.MaxInt32
		} else {
			wait = int(prediction)
		}
	}
	status := Classify(wait)
	return PredictionResult{
		WaitMinutes: wait,
		Status:      status,
		Label:       status.Label(),
		Color:       status.Color(),
	}
}

// TrendPoint is one hour on the daily wait curve
type TrendPoint struct {
	Hour        int     `json:"hour"`
	WaitMinutes float64 `json:"waitMinutes"`
}

// TrendCurve holds one point per opening hour in ascending order
type TrendCurve []TrendPoint

// Chart describes how the front-end should draw the trend curve
type Chart struct {
	Title        string `json:"title"`
	SelectedHour int    `json:"selectedHour"`
	XAxisTitle   string `json:"xAxisTitle"`
	YAxisTitle   string `json:"yAxisTitle"`
}

// NewChart builds chart metadata for a selection
func NewChart(weather Weather, dayType DayType, selectedHour int) Chart {
	return Chart{
		Title:        fmt.Sprintf("Wait Time Curve (%s, %s)", weather, dayType),
		SelectedHour: selectedHour,
		XAxisTitle:   "Hour of Day",
		YAxisTitle:   "Wait Time (min)",
	}
}

// Dashboard is everything the presentation layer renders for one Predict action.
// When ModelAvailable is false only Notice is set.
type Dashboard struct {
	ModelAvailable bool               `json:"modelAvailable"`
	Notice         string             `json:"notice,omitempty"`
	Ride           string             `json:"ride,omitempty"`
	Request        *PredictionRequest `json:"request,omitempty"`
	Result         *PredictionResult  `json:"result,omitempty"`
	Trend          TrendCurve         `json:"trend,omitempty"`
	Chart          *Chart             `json:"chart,omitempty"`
}
