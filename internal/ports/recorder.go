package ports

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// Recorder handles periodic sensor reading, storage and recommendation
type Recorder struct {
	sensor      SoilSensor
	repo        domain.ReadingRepository
	recommender Recommender
	interval    time.Duration
	retention   time.Duration

	// sensor retry policy
	retryInitial time.Duration
	maxRetries   uint64

	// breaker stops polling a sensor that keeps failing whole retry rounds
	breaker *gobreaker.CircuitBreaker
}

// sensorTripAfter is the number of consecutive failed rounds that opens the breaker
const sensorTripAfter = 3

// NewRecorder creates a new background recorder.
// Readings older than retention are pruned once a day.
func NewRecorder(sensor SoilSensor, repo domain.ReadingRepository, rec Recommender, interval, retention time.Duration) *Recorder {
	return &Recorder{
		sensor:       sensor,
		repo:         repo,
		recommender:  rec,
		interval:     interval,
		retention:    retention,
		retryInitial: 500 * time.Millisecond,
		maxRetries:   3,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "soil-sensor",
			Timeout: 3 * interval,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= sensorTripAfter
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("sensor breaker state changed")
			},
		}),
	}
}

// Start begins periodic sensor reading
// This runs in a goroutine until context is cancelled
func (r *Recorder) Start(ctx context.Context) {
	log.Info().
		Dur("interval", r.interval).
		Dur("retention", r.retention).
		Msg("starting background recorder")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(24 * time.Hour)
	defer cleanupTicker.Stop()

	// Record immediately on start
	r.recordOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.recordOnce(ctx)

		case <-cleanupTicker.C:
			if err := r.repo.DeleteOldReadings(ctx, r.retention); err != nil {
				log.Error().Err(err).Msg("failed to delete old readings")
			} else {
				log.Info().Dur("retention", r.retention).Msg("deleted old readings")
			}

		case <-ctx.Done():
			log.Info().Msg("stopping background recorder")
			return
		}
	}
}

// readSensor retries transient sensor failures with exponential backoff.
// While the breaker is open it fails fast with gobreaker.ErrOpenState.
func (r *Recorder) readSensor(ctx context.Context) (domain.SoilSample, error) {
	v, err := r.breaker.Execute(func() (interface{}, error) {
		return r.readWithRetry(ctx)
	})
	if err != nil {
		return domain.SoilSample{}, err
	}
	return v.(domain.SoilSample), nil
}

func (r *Recorder) readWithRetry(ctx context.Context) (domain.SoilSample, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.retryInitial

	var sample domain.SoilSample
	err := backoff.RetryNotify(func() error {
		s, err := r.sensor.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		sample = s
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, r.maxRetries), ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("sensor read failed")
	})

	return sample, err
}

// recordOnce reads the sensor, saves the reading and logs the top crop
func (r *Recorder) recordOnce(ctx context.Context) {
	log.Debug().Msg("reading sensor")

	sample, err := r.readSensor(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read sensor")
		return
	}

	reading, err := domain.NewSoilReading(sample)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reading")
		return
	}

	if err := r.repo.SaveReading(ctx, reading); err != nil {
		log.Error().Err(err).Msg("failed to save reading")
		return
	}

	rec, err := r.recommender.RecommendSample(sample)
	if err != nil {
		log.Error().Err(err).Int64("id", reading.ID).Msg("failed to recommend for reading")
		return
	}

	event := log.Info().
		Int64("id", reading.ID).
		Float64("ph", sample.PH).
		Float64("temperature", sample.Temperature).
		Float64("humidity", sample.Humidity)
	if rec.Top != nil {
		event = event.
			Str("top_crop", rec.Top.Crop).
			Float64("score", rec.Top.Score).
			Str("confidence", string(rec.Top.Confidence))
	}
	event.Msg("recorded soil reading")
}
