package ports

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/catalog"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/recommender"
)

func newEvaluator(t *testing.T) *recommender.Evaluator {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	ev, err := c.Compile()
	require.NoError(t, err)
	return ev
}

// flakySensor fails the first n reads
type flakySensor struct {
	failures int32
	calls    atomic.Int32
	sample   domain.SoilSample
}

func (s *flakySensor) Read(ctx context.Context) (domain.SoilSample, error) {
	if s.calls.Add(1) <= s.failures {
		return domain.SoilSample{}, domain.ErrSensorUnavailable
	}
	return s.sample, nil
}

func (s *flakySensor) Close() error { return nil }

func TestRecorder_RetriesSensor(t *testing.T) {
	repo := memory.NewReadingRepository()
	sensor := &flakySensor{failures: 2, sample: domain.SoilSample{PH: 6.5, Temperature: 27, Humidity: 75}}

	r := NewRecorder(sensor, repo, newEvaluator(t), time.Minute, time.Hour)
	r.retryInitial = time.Millisecond

	r.recordOnce(context.Background())

	assert.Equal(t, int32(3), sensor.calls.Load())
	latest, err := repo.GetLatestReading(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sensor.sample, latest.SoilSample)
}

func TestRecorder_GivesUpAfterMaxRetries(t *testing.T) {
	repo := memory.NewReadingRepository()
	sensor := &flakySensor{failures: 100}

	r := NewRecorder(sensor, repo, newEvaluator(t), time.Minute, time.Hour)
	r.retryInitial = time.Millisecond
	r.maxRetries = 2

	r.recordOnce(context.Background())

	assert.Equal(t, int32(3), sensor.calls.Load())
	_, err := repo.GetLatestReading(context.Background())
	assert.ErrorIs(t, err, domain.ErrReadingNotFound)
}

func TestRecorder_BreakerSkipsDeadSensor(t *testing.T) {
	repo := memory.NewReadingRepository()
	sensor := &flakySensor{failures: 100}

	r := NewRecorder(sensor, repo, newEvaluator(t), time.Hour, time.Hour)
	r.retryInitial = time.Millisecond
	r.maxRetries = 0

	for i := 0; i < sensorTripAfter+2; i++ {
		r.recordOnce(context.Background())
	}

	assert.Equal(t, int32(sensorTripAfter), sensor.calls.Load())

	_, err := r.readSensor(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestRecorder_StopsOnCancel(t *testing.T) {
	repo := memory.NewReadingRepository()
	sensor := &flakySensor{sample: domain.SoilSample{PH: 7, Temperature: 25, Humidity: 60}}
	r := NewRecorder(sensor, repo, newEvaluator(t), time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, err := repo.GetLatestReading(context.Background())
		return err == nil
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop after cancel")
	}
}

// badRepo fails range queries
type badRepo struct {
	*memory.ReadingRepository
	err error
}

func (b badRepo) GetReadingsInRange(ctx context.Context, start, end time.Time) ([]*domain.SoilReading, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.ReadingRepository.GetReadingsInRange(ctx, start, end)
}

func TestBatchRecommender_Run(t *testing.T) {
	repo := memory.NewReadingRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	samples := []domain.SoilSample{
		{PH: 6.5, Temperature: 27, Humidity: 75},
		{PH: 6.5, Temperature: 27, Humidity: 0},
		{PH: 15, Temperature: 27, Humidity: 75}, // stored by a legacy importer
		{PH: 14, Temperature: 50, Humidity: 100},
	}
	for i, s := range samples {
		r := &domain.SoilReading{SoilSample: s, Timestamp: now.Add(time.Duration(i-10) * time.Minute)}
		require.NoError(t, repo.SaveReading(ctx, r))
	}

	b := NewBatchRecommender(repo, newEvaluator(t), 2)
	run, err := b.Run(ctx, now.Add(-time.Hour), now)
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	require.Len(t, run.Items, 4)
	assert.Equal(t, 1, run.Failed)

	assert.Equal(t, "Padi", run.Items[0].Result.Top.Crop)
	assert.Equal(t, "Kacang_Hijau", run.Items[1].Result.Top.Crop)
	assert.ErrorIs(t, run.Items[2].Err, domain.ErrOutOfRange)
	assert.Nil(t, run.Items[2].Result)
	assert.Equal(t, samples[3], run.Items[3].Reading.SoilSample)
}

func TestBatchRecommender_RepositoryError(t *testing.T) {
	boom := errors.New("disk on fire")
	b := NewBatchRecommender(badRepo{ReadingRepository: memory.NewReadingRepository(), err: boom}, newEvaluator(t), 0)

	_, err := b.Run(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, boom)
}

func TestBatchRecommender_Cancelled(t *testing.T) {
	repo := memory.NewReadingRepository()
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now().UTC()
	require.NoError(t, repo.SaveReading(ctx, &domain.SoilReading{
		SoilSample: domain.SoilSample{PH: 7, Temperature: 25, Humidity: 60},
		Timestamp:  now.Add(-time.Minute),
	}))
	cancel()

	_, err := NewBatchRecommender(repo, newEvaluator(t), 1).Run(ctx, now.Add(-time.Hour), now)
	assert.ErrorIs(t, err, context.Canceled)
}
