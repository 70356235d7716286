package ports

import (
	"context"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// SoilSensor defines how to read the soil probe
// This is a PORT - adapters (GPIO, Mock) will implement it
type SoilSensor interface {
	// Read returns the current pH, temperature and humidity
	Read(ctx context.Context) (domain.SoilSample, error)

	// Close releases any resources
	Close() error
}

// Recommender ranks crops for a soil sample.
// recommender.Evaluator is the production implementation.
type Recommender interface {
	RecommendSample(sample domain.SoilSample) (*domain.Recommendation, error)
	OptimalConditions(crop string) (domain.GrowingConditions, error)
	Crops() []string
}
