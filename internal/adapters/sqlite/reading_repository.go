package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// ReadingRepository implements domain.ReadingRepository with SQLite.
// Timestamps are stored as UTC unix nanoseconds.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository creates a SQLite-backed repository
func NewReadingRepository(dbPath string) (*ReadingRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS soil_readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ph REAL NOT NULL,
		temperature REAL NOT NULL,
		humidity REAL NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_soil_readings_timestamp ON soil_readings(timestamp);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &ReadingRepository{db: db}, nil
}

// SaveReading stores a reading in SQLite
func (r *ReadingRepository) SaveReading(ctx context.Context, reading *domain.SoilReading) error {
	query := `INSERT INTO soil_readings (ph, temperature, humidity, timestamp) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		reading.PH, reading.Temperature, reading.Humidity, reading.Timestamp.UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}

	reading.ID = id
	return nil
}

const selectColumns = `SELECT id, ph, temperature, humidity, timestamp FROM soil_readings`

type scanner interface {
	Scan(dest ...any) error
}

func scanReading(s scanner) (*domain.SoilReading, error) {
	var reading domain.SoilReading
	var nanos int64

	if err := s.Scan(&reading.ID, &reading.PH, &reading.Temperature, &reading.Humidity, &nanos); err != nil {
		return nil, err
	}

	reading.Timestamp = time.Unix(0, nanos).UTC()
	return &reading, nil
}

// GetReading retrieves a reading by ID
func (r *ReadingRepository) GetReading(ctx context.Context, id int64) (*domain.SoilReading, error) {
	reading, err := scanReading(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReadingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reading: %w", err)
	}

	return reading, nil
}

// GetReadingsInRange returns readings in [start, end), oldest first
func (r *ReadingRepository) GetReadingsInRange(ctx context.Context, start, end time.Time) ([]*domain.SoilReading, error) {
	query := selectColumns + `
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start.UTC().UnixNano(), end.UTC().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []*domain.SoilReading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}

	return readings, nil
}

// GetLatestReading returns the most recent reading
func (r *ReadingRepository) GetLatestReading(ctx context.Context) (*domain.SoilReading, error) {
	query := selectColumns + ` ORDER BY timestamp DESC, id DESC LIMIT 1`

	reading, err := scanReading(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReadingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}

	return reading, nil
}

// DeleteOldReadings removes readings older than specified duration
func (r *ReadingRepository) DeleteOldReadings(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UTC().UnixNano()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM soil_readings WHERE timestamp < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to delete old readings: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *ReadingRepository) Close() error {
	return r.db.Close()
}
