package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/funfair/waitpredictor/models"
)

//go:embed schema_postgres.sql
var postgresSchema string

// PostgresPredictionLog stores served predictions in PostgreSQL
type PostgresPredictionLog struct {
	pool *pgxpool.Pool
}

// NewPostgresPredictionLog connects to databaseURL and ensures the schema
func NewPostgresPredictionLog(ctx context.Context, databaseURL string) (*PostgresPredictionLog, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Println("Connected to PostgreSQL prediction log")
	return &PostgresPredictionLog{pool: pool}, nil
}

// Close closes the connection pool
func (r *PostgresPredictionLog) Close() error {
	r.pool.Close()
	return nil
}

// Ping checks database connectivity
func (r *PostgresPredictionLog) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// RecordPrediction inserts one log entry
func (r *PostgresPredictionLog) RecordPrediction(ctx context.Context, entry models.PredictionLogEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid prediction log entry: %w", err)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO prediction_log (
			id, ride_id, ride_name, weather, hour_of_day,
			is_weekend, wait_minutes, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.RideID, entry.RideName, string(entry.Weather), entry.HourOfDay,
		entry.IsWeekend, entry.WaitMinutes, string(entry.Status), entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// RecentPredictions returns the newest entries first
func (r *PostgresPredictionLog) RecentPredictions(ctx context.Context, limit int) ([]models.PredictionLogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ride_id, ride_name, weather, hour_of_day,
		       is_weekend, wait_minutes, status, created_at
		FROM prediction_log
		ORDER BY created_at DESC, seq DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	entries := make([]models.PredictionLogEntry, 0, limit)
	for rows.Next() {
		var e models.PredictionLogEntry
		var weather, status string
		var hour int16
		if err := rows.Scan(
			&e.ID,
			&e.RideID,
			&e.RideName,
			&weather,
			&hour,
			&e.IsWeekend,
			&e.WaitMinutes,
			&status,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		e.Weather = models.Weather(weather)
		e.Status = models.Status(status)
		e.HourOfDay = int(hour)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prediction rows: %w", err)
	}
	return entries, nil
}

// Cleanup deletes entries older than retention and returns how many were removed
func (r *PostgresPredictionLog) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM prediction_log WHERE created_at < $1", time.Now().UTC().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup prediction log: %w", err)
	}
	if deleted := tag.RowsAffected(); deleted > 0 {
		log.Printf("Cleanup: deleted %d predictions older than %v", deleted, retention)
	}
	return tag.RowsAffected(), nil
}
