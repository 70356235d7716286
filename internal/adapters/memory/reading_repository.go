package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// ReadingRepository implements domain.ReadingRepository with in-memory storage
type ReadingRepository struct {
	mu       sync.RWMutex
	readings map[int64]domain.SoilReading
	nextID   int64
}

// NewReadingRepository creates an empty in-memory repository
func NewReadingRepository() *ReadingRepository {
	return &ReadingRepository{
		readings: make(map[int64]domain.SoilReading),
		nextID:   1,
	}
}

// SaveReading stores a copy of the reading and assigns its ID
func (r *ReadingRepository) SaveReading(ctx context.Context, reading *domain.SoilReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reading.ID == 0 {
		reading.ID = r.nextID
		r.nextID++
	} else if reading.ID >= r.nextID {
		r.nextID = reading.ID + 1
	}

	r.readings[reading.ID] = *reading
	return nil
}

// GetReading retrieves a reading by ID
func (r *ReadingRepository) GetReading(ctx context.Context, id int64) (*domain.SoilReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reading, exists := r.readings[id]
	if !exists {
		return nil, domain.ErrReadingNotFound
	}

	return &reading, nil
}

// GetReadingsInRange returns readings in [start, end), oldest first
func (r *ReadingRepository) GetReadingsInRange(ctx context.Context, start, end time.Time) ([]*domain.SoilReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*domain.SoilReading
	for _, reading := range r.readings {
		if !reading.Timestamp.Before(start) && reading.Timestamp.Before(end) {
			reading := reading
			results = append(results, &reading)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Timestamp.Equal(results[j].Timestamp) {
			return results[i].ID < results[j].ID
		}
		return results[i].Timestamp.Before(results[j].Timestamp)
	})

	return results, nil
}

// GetLatestReading returns the most recent reading
func (r *ReadingRepository) GetLatestReading(ctx context.Context) (*domain.SoilReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.readings) == 0 {
		return nil, domain.ErrReadingNotFound
	}

	var latest *domain.SoilReading
	for _, reading := range r.readings {
		if latest == nil || reading.Timestamp.After(latest.Timestamp) ||
			(reading.Timestamp.Equal(latest.Timestamp) && reading.ID > latest.ID) {
			reading := reading
			latest = &reading
		}
	}

	return latest, nil
}

// DeleteOldReadings removes readings older than specified duration
func (r *ReadingRepository) DeleteOldReadings(ctx context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	for id, reading := range r.readings {
		if reading.Timestamp.Before(cutoff) {
			delete(r.readings, id)
		}
	}

	return nil
}
