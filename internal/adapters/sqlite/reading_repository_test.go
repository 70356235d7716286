package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

func newTestRepo(t *testing.T) *ReadingRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewReadingRepository(dbPath)
	if err != nil {
		t.Fatalf("failed to create SQLite repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func makeReading(t *testing.T, ph float64, ts time.Time) *domain.SoilReading {
	t.Helper()
	r, err := domain.NewSoilReading(domain.SoilSample{PH: ph, Temperature: 27, Humidity: 75})
	if err != nil {
		t.Fatalf("unexpected error creating reading: %v", err)
	}
	r.Timestamp = ts
	return r
}

func TestSaveAndGetReading(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	reading := makeReading(t, 6.5, time.Now().UTC())

	if err := repo.SaveReading(ctx, reading); err != nil {
		t.Fatalf("SaveReading failed: %v", err)
	}
	if reading.ID == 0 {
		t.Fatal("expected ID to be set after save")
	}

	got, err := repo.GetReading(ctx, reading.ID)
	if err != nil {
		t.Fatalf("GetReading failed: %v", err)
	}
	if got.SoilSample != reading.SoilSample {
		t.Errorf("got sample %+v, want %+v", got.SoilSample, reading.SoilSample)
	}
	if !got.Timestamp.Equal(reading.Timestamp) {
		t.Errorf("got timestamp %v, want %v", got.Timestamp, reading.Timestamp)
	}
}

func TestGetReading_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetReading(context.Background(), 42)
	if err != domain.ErrReadingNotFound {
		t.Errorf("expected ErrReadingNotFound, got %v", err)
	}
}

func TestGetLatestReading(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetLatestReading(ctx)
	if err != domain.ErrReadingNotFound {
		t.Errorf("expected ErrReadingNotFound, got %v", err)
	}

	now := time.Now().UTC()
	_ = repo.SaveReading(ctx, makeReading(t, 7, now))
	_ = repo.SaveReading(ctx, makeReading(t, 5, now.Add(-time.Hour)))

	latest, err := repo.GetLatestReading(ctx)
	if err != nil {
		t.Fatalf("GetLatestReading failed: %v", err)
	}
	if latest.PH != 7 {
		t.Errorf("expected latest ph 7, got %v", latest.PH)
	}
}

func TestGetReadingsInRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	_ = repo.SaveReading(ctx, makeReading(t, 5, now.Add(-2*time.Hour)))
	_ = repo.SaveReading(ctx, makeReading(t, 6, now.Add(-1*time.Hour)))
	_ = repo.SaveReading(ctx, makeReading(t, 7, now.Add(1*time.Hour)))

	// Range: [now-90m, now): only the middle reading should appear
	results, err := repo.GetReadingsInRange(ctx, now.Add(-90*time.Minute), now)
	if err != nil {
		t.Fatalf("GetReadingsInRange failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(results))
	}
	if results[0].PH != 6 {
		t.Errorf("expected ph 6, got %v", results[0].PH)
	}
}

func TestGetReadingsInRange_HalfOpen(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ts := time.Now().UTC().Truncate(time.Second)
	_ = repo.SaveReading(ctx, makeReading(t, 6, ts))

	// start == timestamp: included
	results, err := repo.GetReadingsInRange(ctx, ts, ts.Add(time.Second))
	if err != nil {
		t.Fatalf("GetReadingsInRange failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result (inclusive start), got %d", len(results))
	}

	// end == timestamp: excluded
	results, err = repo.GetReadingsInRange(ctx, ts.Add(-time.Second), ts)
	if err != nil {
		t.Fatalf("GetReadingsInRange failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results (exclusive end), got %d", len(results))
	}
}

func TestDeleteOldReadings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	old := makeReading(t, 5, now.Add(-48*time.Hour))
	recent := makeReading(t, 6, now.Add(-1*time.Hour))
	_ = repo.SaveReading(ctx, old)
	_ = repo.SaveReading(ctx, recent)

	if err := repo.DeleteOldReadings(ctx, 24*time.Hour); err != nil {
		t.Fatalf("DeleteOldReadings failed: %v", err)
	}

	if _, err := repo.GetReading(ctx, old.ID); err != domain.ErrReadingNotFound {
		t.Errorf("expected old reading to be deleted, got err: %v", err)
	}
	if _, err := repo.GetReading(ctx, recent.ID); err != nil {
		t.Errorf("expected recent reading to remain, got err: %v", err)
	}
}
