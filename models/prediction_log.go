package models

import (
	"errors"
	"time"
)

// PredictionLogEntry is one served prediction, kept for offline comparison against observed queues
type PredictionLogEntry struct {
	ID          string    `json:"id" db:"id"`
	RideID      string    `json:"rideId" db:"ride_id"`
	RideName    string    `json:"rideName" db:"ride_name"`
	Weather     Weather   `json:"weather" db:"weather"`
	HourOfDay   int       `json:"hourOfDay" db:"hour_of_day"`
	IsWeekend   bool      `json:"isWeekend" db:"is_weekend"`
	WaitMinutes int       `json:"waitMinutes" db:"wait_minutes"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Validate checks required fields before the entry is written
func (e *PredictionLogEntry) Validate() error {
	if e.ID == "" {
		return errors.New("id is required")
	}
	if e.RideID == "" {
		return errors.New("ride_id is required")
	}
	if e.WaitMinutes < 0 {
		return errors.New("wait_minutes cannot be negative")
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}
	return nil
}

// RecentPredictionsResponse is the response for GET /api/predictions/recent
type RecentPredictionsResponse struct {
	Predictions []PredictionLogEntry `json:"predictions"`
	Count       int                  `json:"count"`
	LastChecked time.Time            `json:"lastChecked"`
}
