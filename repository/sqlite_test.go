package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/funfair/waitpredictor/models"
)

func setupSQLite(t *testing.T) *SQLitePredictionLog {
	t.Helper()
	repo, err := NewSQLitePredictionLog(context.Background(), filepath.Join(t.TempDir(), "predictions.db"))
	if err != nil {
		t.Fatalf("Failed to open SQLite prediction log: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newEntry(rideID string, wait int, createdAt time.Time) models.PredictionLogEntry {
	return models.PredictionLogEntry{
		ID:          uuid.New().String(),
		RideID:      rideID,
		RideName:    "Ferris Wheel",
		Weather:     models.WeatherSunny,
		HourOfDay:   12,
		IsWeekend:   true,
		WaitMinutes: wait,
		Status:      models.Classify(wait),
		CreatedAt:   createdAt.UTC().Truncate(time.Second),
	}
}

func TestSQLiteRecordAndRecent(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	now := time.Now()

	older := newEntry("R_002", 12, now.Add(-2*time.Minute))
	newer := newEntry("R_001", 50, now.Add(-1*time.Minute))

	for _, e := range []models.PredictionLogEntry{older, newer} {
		if err := repo.RecordPrediction(ctx, e); err != nil {
			t.Fatalf("RecordPrediction failed: %v", err)
		}
	}

	entries, err := repo.RecentPredictions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPredictions failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	got := entries[0]
	if got.ID != newer.ID {
		t.Errorf("expected newest entry first, got %s", got.ID)
	}
	if got.RideID != "R_001" || got.WaitMinutes != 50 || got.Status != models.StatusLong {
		t.Errorf("unexpected entry: %+v", got)
	}
	if !got.IsWeekend {
		t.Error("IsWeekend should round-trip as true")
	}
	if got.Weather != models.WeatherSunny || got.HourOfDay != 12 {
		t.Errorf("unexpected weather/hour: %s %d", got.Weather, got.HourOfDay)
	}
	if !got.CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, newer.CreatedAt)
	}
}

func TestSQLiteRecentLimit(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		if err := repo.RecordPrediction(ctx, newEntry("R_003", i, now.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("RecordPrediction failed: %v", err)
		}
	}

	entries, err := repo.RecentPredictions(ctx, 3)
	if err != nil {
		t.Fatalf("RecentPredictions failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].WaitMinutes != 4 {
		t.Errorf("expected newest (wait 4) first, got %d", entries[0].WaitMinutes)
	}
}

func TestSQLiteRecentSubSecondOrder(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// Inserted newest first so insertion order cannot mask a bad sort
	var want []string
	for _, offset := range []time.Duration{900 * time.Millisecond, 250 * time.Millisecond, 3 * time.Microsecond} {
		e := newEntry("R_001", 20, base)
		e.CreatedAt = base.Add(offset)
		if err := repo.RecordPrediction(ctx, e); err != nil {
			t.Fatalf("RecordPrediction failed: %v", err)
		}
		want = append(want, e.ID)
	}

	entries, err := repo.RecentPredictions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPredictions failed: %v", err)
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.ID != want[i] {
			t.Errorf("entry %d: got %s (%v), want %s", i, e.ID, e.CreatedAt, want[i])
		}
	}
	if !entries[2].CreatedAt.Equal(base.Add(3 * time.Microsecond)) {
		t.Errorf("sub-second CreatedAt did not round-trip: %v", entries[2].CreatedAt)
	}
}

func TestSQLiteRecentSameTimestampNewestInsertFirst(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	at := time.Now()

	var ids []string
	for i := 0; i < 4; i++ {
		e := newEntry("R_002", 10+i, at)
		if err := repo.RecordPrediction(ctx, e); err != nil {
			t.Fatalf("RecordPrediction failed: %v", err)
		}
		ids = append(ids, e.ID)
	}

	entries, err := repo.RecentPredictions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPredictions failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if want := ids[len(ids)-1-i]; e.ID != want {
			t.Errorf("entry %d: got %s, want %s", i, e.ID, want)
		}
	}
}

func TestSQLiteRejectsInvalidEntry(t *testing.T) {
	repo := setupSQLite(t)

	e := newEntry("R_001", 10, time.Now())
	e.ID = ""
	if err := repo.RecordPrediction(context.Background(), e); err == nil {
		t.Error("expected error for entry without id")
	}
}

func TestSQLiteCleanup(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()
	now := time.Now()

	stale := newEntry("R_004", 30, now.Add(-10*24*time.Hour))
	fresh := newEntry("R_004", 35, now.Add(-1*time.Hour))
	for _, e := range []models.PredictionLogEntry{stale, fresh} {
		if err := repo.RecordPrediction(ctx, e); err != nil {
			t.Fatalf("RecordPrediction failed: %v", err)
		}
	}

	deleted, err := repo.Cleanup(ctx, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted row, got %d", deleted)
	}

	entries, err := repo.RecentPredictions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPredictions failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != fresh.ID {
		t.Errorf("expected only the fresh entry to remain, got %+v", entries)
	}
}

func TestSQLitePing(t *testing.T) {
	repo := setupSQLite(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestOpenPredictionLogDisabled(t *testing.T) {
	pl, err := OpenPredictionLog(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pl != nil {
		t.Error("expected nil prediction log when nothing is configured")
	}
}

func TestOpenPredictionLogSQLite(t *testing.T) {
	pl, err := OpenPredictionLog(context.Background(), "", filepath.Join(t.TempDir(), "p.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pl.Close()
	if _, ok := pl.(*SQLitePredictionLog); !ok {
		t.Errorf("expected *SQLitePredictionLog, got %T", pl)
	}
}
