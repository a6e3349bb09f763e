package repository

import (
	"context"
	"time"

	"github.com/funfair/waitpredictor/models"
)

// PredictionLog is a prediction log backend
type PredictionLog interface {
	RecordPrediction(ctx context.Context, entry models.PredictionLogEntry) error
	RecentPredictions(ctx context.Context, limit int) ([]models.PredictionLogEntry, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// OpenPredictionLog connects to PostgreSQL when databaseURL is set, otherwise to
// SQLite when sqlitePath is set. It returns nil, nil when neither is configured.
func OpenPredictionLog(ctx context.Context, databaseURL, sqlitePath string) (PredictionLog, error) {
	switch {
	case databaseURL != "":
		pg, err := NewPostgresPredictionLog(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case sqlitePath != "":
		lite, err := NewSQLitePredictionLog(ctx, sqlitePath)
		if err != nil {
			return nil, err
		}
		return lite, nil
	}
	return nil, nil
}
