package predictor

import (
	"github.com/funfair/waitpredictor/internal/features"
	"github.com/funfair/waitpredictor/models"
)

// TrendHours returns the opening hours 10..22 in ascending order
func TrendHours() []int {
	hours := make([]int, 0, models.MaxHour-models.MinHour+1)
	for h := models.MinHour; h <= models.MaxHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// GenerateTrend predicts every opening hour for a ride, weather and day type in
// one batch call. The curve is rebuilt on every call.
func (p *Predictor) GenerateTrend(rideID string, weather models.Weather, isWeekend bool) (models.TrendCurve, error) {
	hours := TrendHours()
	rows := features.EncodeBatch(rideID, weather, hours, isWeekend)

	preds, err := p.PredictMany(rows)
	if err != nil {
		return nil, err
	}

	curve := make(models.TrendCurve, len(hours))
	for i, h := range hours {
		curve[i] = models.TrendPoint{Hour: h, WaitMinutes: preds[i]}
	}
	return curve, nil
}
