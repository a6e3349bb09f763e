package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/funfair/waitpredictor/models"

	_ "modernc.org/sqlite"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// sqliteTimeFormat is fixed-width UTC with nanoseconds so created_at sorts lexically in time order
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLitePredictionLog stores served predictions in a local SQLite file
type SQLitePredictionLog struct {
	db      *sqlx.DB
	writeMu sync.Mutex // SQLite allows a single writer
}

// NewSQLitePredictionLog opens (or creates) the database at dbPath and ensures the schema
func NewSQLitePredictionLog(ctx context.Context, dbPath string) (*SQLitePredictionLog, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_journal=WAL&_fk=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL"); err != nil {
		log.Printf("Warning: failed to set synchronous pragma: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("Connected to SQLite prediction log: %s", dbPath)
	return &SQLitePredictionLog{db: db}, nil
}

// Close closes the database connection
func (r *SQLitePredictionLog) Close() error {
	return r.db.Close()
}

// Ping checks database connectivity
func (r *SQLitePredictionLog) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// sqlitePredictionRow mirrors prediction_log; SQLite stores booleans as 0/1 and timestamps as sqliteTimeFormat text
type sqlitePredictionRow struct {
	ID          string `db:"id"`
	RideID      string `db:"ride_id"`
	RideName    string `db:"ride_name"`
	Weather     string `db:"weather"`
	HourOfDay   int    `db:"hour_of_day"`
	IsWeekend   int    `db:"is_weekend"`
	WaitMinutes int    `db:"wait_minutes"`
	Status      string `db:"status"`
	CreatedAt   string `db:"created_at"`
}

func (row sqlitePredictionRow) toEntry() models.PredictionLogEntry {
	e := models.PredictionLogEntry{
		ID:          row.ID,
		RideID:      row.RideID,
		RideName:    row.RideName,
		Weather:     models.Weather(row.Weather),
		HourOfDay:   row.HourOfDay,
		IsWeekend:   row.IsWeekend == 1,
		WaitMinutes: row.WaitMinutes,
		Status:      models.Status(row.Status),
	}
	if t, err := time.Parse(time.RFC3339Nano, row.CreatedAt); err == nil {
		e.CreatedAt = t
	}
	return e
}

// RecordPrediction inserts one log entry
func (r *SQLitePredictionLog) RecordPrediction(ctx context.Context, entry models.PredictionLogEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid prediction log entry: %w", err)
	}

	isWeekend := 0
	if entry.IsWeekend {
		isWeekend = 1
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prediction_log (
			id, ride_id, ride_name, weather, hour_of_day,
			is_weekend, wait_minutes, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.RideID, entry.RideName, string(entry.Weather), entry.HourOfDay,
		isWeekend, entry.WaitMinutes, string(entry.Status), entry.CreatedAt.UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// RecentPredictions returns the newest entries first; equal timestamps fall back to insertion order
func (r *SQLitePredictionLog) RecentPredictions(ctx context.Context, limit int) ([]models.PredictionLogEntry, error) {
	var rows []sqlitePredictionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, ride_id, ride_name, weather, hour_of_day,
		       is_weekend, wait_minutes, status, created_at
		FROM prediction_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}

	entries := make([]models.PredictionLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry())
	}
	return entries, nil
}

// Cleanup deletes entries older than retention and returns how many were removed
func (r *SQLitePredictionLog) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(sqliteTimeFormat)

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx, "DELETE FROM prediction_log WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup prediction log: %w", err)
	}
	deleted, _ := result.RowsAffected()
	if deleted > 0 {
		log.Printf("Cleanup: deleted %d predictions older than %v", deleted, retention)
	}
	return deleted, nil
}
