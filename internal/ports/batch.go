package ports

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// ReadingRecommendation pairs a stored reading with its recommendation.
// Err is set instead of Result when the reading could not be evaluated.
type ReadingRecommendation struct {
	Reading *domain.SoilReading
	Result  *domain.Recommendation
	Err     error
}

// BatchRun is the outcome of one batch over stored readings
type BatchRun struct {
	ID       string
	Start    time.Time
	End      time.Time
	Items    []ReadingRecommendation
	Failed   int
	Duration time.Duration
}

// BatchRecommender evaluates historical readings from the repository
type BatchRecommender struct {
	repo        domain.ReadingRepository
	recommender Recommender
	workers     int
}

// NewBatchRecommender creates a batch runner. workers <= 0 uses GOMAXPROCS.
func NewBatchRecommender(repo domain.ReadingRepository, rec Recommender, workers int) *BatchRecommender {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &BatchRecommender{repo: repo, recommender: rec, workers: workers}
}

// Run recommends for every reading in [start, end). Items keep repository
// order. Per-reading failures are recorded on the item; only repository
// errors and cancellation fail the run.
func (b *BatchRecommender) Run(ctx context.Context, start, end time.Time) (*BatchRun, error) {
	began := time.Now()
	run := &BatchRun{ID: uuid.New().String(), Start: start, End: end}

	readings, err := b.repo.GetReadingsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", run.ID, err)
	}

	run.Items = make([]ReadingRecommendation, len(readings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, reading := range readings {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := b.recommender.RecommendSample(reading.SoilSample)
			run.Items[i] = ReadingRecommendation{Reading: reading, Result: rec, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", run.ID, err)
	}

	for _, item := range run.Items {
		if item.Err != nil {
			run.Failed++
		}
	}
	run.Duration = time.Since(began)

	log.Info().
		Str("batch_id", run.ID).
		Int("readings", len(run.Items)).
		Int("failed", run.Failed).
		Dur("duration", run.Duration).
		Msg("batch recommendation finished")

	return run, nil
}
