// Package features turns dashboard selections into the exact row layout the
// wait-time model was trained on.
//
// Column names, their order and the categorical spellings must match the
// training pipeline. Nothing here can detect drift on its own; the model
// loader compares the artifact's declared columns against Columns.
package features

import "github.com/funfair/waitpredictor/models"

// Model column names, in training order
const (
	ColumnRideID    = "ride_id"
	ColumnWeather   = "weather"
	ColumnHourOfDay = "hour_of_day"
	ColumnIsWeekend = "is_weekend"
)

// Columns is the model-agreed column order
var Columns = []string{ColumnRideID, ColumnWeather, ColumnHourOfDay, ColumnIsWeekend}

// Row is a single model input
type Row struct {
	RideID    string `json:"ride_id"`
	Weather   string `json:"weather"`
	HourOfDay int    `json:"hour_of_day"`
	IsWeekend int    `json:"is_weekend"`
}

// Encode builds the row for one selection. is_weekend is emitted as 1/0.
func Encode(rideID string, weather models.Weather, hourOfDay int, isWeekend bool) Row {
	return Row{
		RideID:    rideID,
		Weather:   string(weather),
		HourOfDay: hourOfDay,
		IsWeekend: boolToInt(isWeekend),
	}
}

// EncodeRequest encodes a resolved prediction request
func EncodeRequest(req models.PredictionRequest) Row {
	return Encode(req.RideID, req.Weather, req.HourOfDay, req.IsWeekend)
}

// EncodeBatch builds one row per hour, in the order given, holding everything else fixed
func EncodeBatch(rideID string, weather models.Weather, hours []int, isWeekend bool) []Row {
	rows := make([]Row, len(hours))
	for i, h := range hours {
		rows[i] = Encode(rideID, weather, h, isWeekend)
	}
	return rows
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
